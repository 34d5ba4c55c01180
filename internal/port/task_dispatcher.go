package port

import (
	"context"
)

// TaskDispatcher enqueues asynchronous tasks handled by the ingest worker.
type TaskDispatcher interface {
	EnqueueIngestStaged(ctx context.Context, in StagedIngestInput) error
}
