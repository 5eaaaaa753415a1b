package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/vaultboard/vaultboard/internal/logging"
)

// Runner executes a single refresh pass.
type Runner interface {
	RunOnce(context.Context) error
}

// Scheduler runs a refresh pass at startup and then every Interval. After
// a failed pass the next one comes sooner: RetryBase, doubled per
// consecutive failure and capped at Interval.
type Scheduler struct {
	Runner    Runner
	Interval  time.Duration
	RetryBase time.Duration
	Logger    *slog.Logger
}

func (s *Scheduler) Run(ctx context.Context) {
	if s.Runner == nil || s.Interval <= 0 {
		return
	}
	logger := logging.Component(s.Logger, "catalog")

	failures := 0
	for {
		if err := s.Runner.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			logger.Error("catalog refresh failed", "consecutive_failures", failures, "err", err)
		} else {
			failures = 0
		}

		timer := time.NewTimer(s.nextDelay(failures))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (s *Scheduler) nextDelay(failures int) time.Duration {
	if failures == 0 || s.RetryBase <= 0 {
		return s.Interval
	}
	return failureBackoffDelay(s.RetryBase, failures, s.Interval)
}

func failureBackoffDelay(base time.Duration, failures int, limit time.Duration) time.Duration {
	delay := base
	for i := 1; i < failures && delay < limit; i++ {
		delay *= 2
	}
	return min(delay, limit)
}
