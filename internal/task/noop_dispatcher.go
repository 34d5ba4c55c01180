package task

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
)

// NoopDispatcher stands in when no queue is configured.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueIngestStaged(ctx context.Context, in port.StagedIngestInput) error {
	return file.ErrQueueDisabled
}
