package task

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

const (
	ingestMaxRetry = 5
	ingestTimeout  = 15 * time.Minute
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(opt asynq.RedisClientOpt) *Dispatcher {
	return &Dispatcher{client: asynq.NewClient(opt)}
}

func (d *Dispatcher) EnqueueIngestStaged(ctx context.Context, in port.StagedIngestInput) error {
	t, err := NewIngestStagedTask(in)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.MaxRetry(ingestMaxRetry), asynq.Timeout(ingestTimeout)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
