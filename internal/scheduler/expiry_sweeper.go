package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

// DefaultInterval is used when no positive interval is configured.
const DefaultInterval = time.Hour

var (
	sweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tmpfiles_sweep_runs_total",
		Help: "Number of expiry sweeps run",
	})
	sweepRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tmpfiles_sweep_removed_total",
		Help: "Number of expired files removed by sweeps",
	})
	sweepErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tmpfiles_sweep_errors_total",
		Help: "Number of sweeps that failed to persist metadata",
	})
	sweepDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tmpfiles_sweep_duration_seconds",
		Help:    "Duration of expiry sweeps in seconds",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})
)

// ExpirySweeper periodically removes expired files from a repository.
type ExpirySweeper struct {
	sweeper  port.Sweeper
	interval time.Duration
	now      port.Clock

	runMu sync.Mutex

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// compile-time check: *ExpirySweeper must satisfy port.SweepRunner
var _ port.SweepRunner = (*ExpirySweeper)(nil)

func NewExpirySweeper(sweeper port.Sweeper, interval time.Duration, now port.Clock) *ExpirySweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ExpirySweeper{sweeper: sweeper, interval: interval, now: now}
}

// Start launches the background loop. Calling it on a running sweeper does nothing.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(loopCtx, s.done)
	logger.Infof(ctx, "⏰ expiry sweeper started (every %s)", s.interval)
}

// Stop ends the background loop and waits for it. Calling it on a stopped sweeper does nothing.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	cancel()
	<-done
	logger.Info(context.Background(), "🛑 expiry sweeper stopped")
}

func (s *ExpirySweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ExpirySweeper) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	// files may have expired while the process was down
	s.runLogged(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runLogged(ctx)
		}
	}
}

func (s *ExpirySweeper) runLogged(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		logger.Errorf(ctx, "❌  expiry sweep failed: %v", err)
	}
}

// RunOnce sweeps at the current clock time. Concurrent calls are serialized.
func (s *ExpirySweeper) RunOnce(ctx context.Context) (model.SweepResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	removed, err := s.sweeper.SweepExpired(ctx, s.now())
	elapsed := time.Since(start)

	sweepRunsTotal.Inc()
	sweepRemovedTotal.Add(float64(removed))
	sweepDurationSeconds.Observe(elapsed.Seconds())

	res := model.SweepResult{Removed: removed, DurationMs: elapsed.Milliseconds()}
	if err != nil {
		sweepErrorsTotal.Inc()
		return res, err
	}
	if removed > 0 {
		logger.Infof(ctx, "✅  expiry sweep removed %d file(s) in %s", removed, elapsed)
	} else {
		logger.Debug(ctx, "expiry sweep found nothing to remove")
	}
	return res, nil
}
