package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Job is invoked on every refresh interval.
type Job func(ctx context.Context, at time.Time) error

// Options tune scheduler behaviour.
type Options struct {
	Interval     time.Duration
	AlignToClock bool
	StartupDelay time.Duration
}

// Scheduler drives the periodic cache-refresh loop. A failed job is logged
// and the loop keeps going; only context cancellation stops it.
type Scheduler struct {
	opts   Options
	logger zerolog.Logger
}

// New constructs a Scheduler instance.
func New(opts Options, logger zerolog.Logger) *Scheduler {
	if opts.Interval <= 0 {
		panic("scheduler interval must be positive")
	}
	return &Scheduler{opts: opts, logger: logger.With().Str("component", "scheduler").Logger()}
}

// Run blocks, invoking job at each interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	if s.opts.StartupDelay > 0 {
		if err := sleep(ctx, s.opts.StartupDelay); err != nil {
			return err
		}
	}

	next := s.nextRun(time.Now().UTC())
	for {
		delay := time.Until(next)
		if delay < 0 {
			next = s.nextRun(time.Now().UTC())
			delay = time.Until(next)
		}

		s.logger.Debug().Time("next_run", next).Msg("waiting for next refresh")
		if err := sleep(ctx, delay); err != nil {
			return err
		}

		s.logger.Info().Time("run_at", next).Msg("executing scheduled refresh")
		if err := job(ctx, next); err != nil {
			s.logger.Error().Err(err).Time("run_at", next).Msg("scheduled refresh failed")
		}

		next = next.Add(s.opts.Interval)
	}
}

// nextRun picks the first execution time, optionally aligned to wall-clock
// multiples of the interval.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	if !s.opts.AlignToClock {
		return now.Add(s.opts.Interval)
	}
	aligned := now.Truncate(s.opts.Interval)
	if !aligned.After(now) {
		aligned = aligned.Add(s.opts.Interval)
	}
	return aligned
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
