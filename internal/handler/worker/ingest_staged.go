package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/task"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
	"github.com/fhuszti/tmpfiles-ms-go/internal/validation"
)

// IngestStagedHandler handles an ingest-staged task.
// It validates the payload and delegates to the port.StagedIngester service.
// Payloads that can never succeed are not retried.
func IngestStagedHandler(ctx context.Context, p port.StagedIngestInput, svc port.StagedIngester) error {
	if err := validation.ValidateStruct(p); err != nil {
		logger.Errorf(ctx, "❌  Invalid ingest payload for object %q: %v", p.ObjectKey, err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	out, err := svc.IngestStaged(ctx, p)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to ingest staged object %q: %v", p.ObjectKey, err)
		if errors.Is(err, file.ErrObjectNotFound) || errors.Is(err, file.ErrBucketNotFound) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	logger.Infof(ctx, "✅  Successfully ingested staged object %q as file #%s", p.ObjectKey, out.ID)
	return nil
}

// NewIngestStagedTaskHandler adapts IngestStagedHandler to asynq.
func NewIngestStagedTaskHandler(svc port.StagedIngester) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseIngestStagedPayload(t)
		if err != nil {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return IngestStagedHandler(ctx, p, svc)
	}
}
