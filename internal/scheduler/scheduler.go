// Package scheduler drives strategy jobs on fixed intervals, one goroutine
// per instance.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/logger"
)

// Job is one schedulable unit of work. Execute receives the previous fire
// time so a job can tell its first run of the process apart from the rest.
type Job interface {
	Name() string
	Execute(ctx context.Context, previousFireTime optional.Option[time.Time])
}

// Scheduler runs each scheduled job in its own loop. A job's cycles never
// overlap: executions run synchronously on the loop, and ticks that fire
// while a cycle is still in flight are dropped, not queued.
type Scheduler struct {
	logger *logger.Logger
	wg     sync.WaitGroup
}

// New creates an empty scheduler.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		logger: log,
	}
}

// Schedule starts the loop for a job. The first cycle fires immediately, the
// rest on the interval, until ctx is cancelled.
func (s *Scheduler) Schedule(ctx context.Context, job Job, interval time.Duration) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.logger.Info("Job scheduled",
			zap.String("job", job.Name()),
			zap.Duration("interval", interval),
		)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.loop(ctx, job, interval, ticker.C)
	}()
}

// loop runs the job once immediately, then on every fresh tick. A tick that
// queued up in the ticker's buffer while a cycle overran its interval is
// stale by the time it is read; stale ticks are dropped so an overrunning
// cycle costs skipped fires, never a catch-up burst.
func (s *Scheduler) loop(ctx context.Context, job Job, interval time.Duration, ticks <-chan time.Time) {
	previous := optional.None[time.Time]()
	run := func(fireTime time.Time) {
		job.Execute(ctx, previous)
		previous = optional.Some(fireTime)
	}

	run(time.Now())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Job stopped", zap.String("job", job.Name()))
			return
		case fireTime := <-ticks:
			if missed := time.Since(fireTime); missed > interval {
				s.logger.Warn("Dropping tick missed during previous cycle",
					zap.String("job", job.Name()),
					zap.Duration("behind", missed),
				)

				continue
			}

			run(fireTime)
		}
	}
}

// Wait blocks until every scheduled loop has drained. Cancel the scheduling
// context first.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
