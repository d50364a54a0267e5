package scheduler

import (
	"context"
	"time"

	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
)

// RunFunc is one scheduled ingestion pass.
type RunFunc func(ctx context.Context) error

// Scheduler fires the run function on a fixed cadence until the context is
// cancelled. A failing run is logged and the cadence keeps going; the next
// tick gets a fresh attempt.
type Scheduler struct {
	interval   time.Duration
	runAtStart bool
	run        RunFunc
	logger     *logging.Logger
}

func New(interval time.Duration, runAtStart bool, run RunFunc, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	return &Scheduler{
		interval:   interval,
		runAtStart: runAtStart,
		run:        run,
		logger:     logger,
	}
}

// Start blocks until ctx is cancelled. Returns nil on a clean shutdown.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "scheduler started",
		"interval", s.interval.String(),
		"run_at_start", s.runAtStart,
	)

	if s.runAtStart {
		s.runOnce(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	startedAt := time.Now()
	if err := s.run(ctx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled run failed",
			"error", err,
			"duration", time.Since(startedAt).String(),
		)
		return
	}
	s.logger.InfoContext(ctx, "scheduled run finished",
		"duration", time.Since(startedAt).String(),
	)
}
