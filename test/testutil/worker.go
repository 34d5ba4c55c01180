package testutil

import (
	"time"

	"github.com/hibiken/asynq"

	workerHandler "github.com/fhuszti/tmpfiles-ms-go/internal/handler/worker"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/task"
)

// StartWorker starts an asynq worker processing staged ingest tasks.
// It returns a function to gracefully shut down the worker.
func StartWorker(svc port.StagedIngester, redisAddr string) (func(), error) {
	mux := asynq.NewServeMux()
	mux.Handle(task.TypeIngestStaged, workerHandler.NewIngestStagedTaskHandler(svc))

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 2,
		// retry quickly so failure cases settle within the test timeout
		RetryDelayFunc: func(n int, err error, t *asynq.Task) time.Duration { return 100 * time.Millisecond },
	})
	if err := srv.Start(mux); err != nil {
		return nil, err
	}

	return srv.Shutdown, nil
}
