// Package scheduler runs the periodic background sweeps: expiry alerts,
// low-stock alerts, notification dispatch and invoice retries.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one periodic task
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler drives a set of jobs on independent tickers. Jobs run
// sequentially within their own ticker; a slow sweep delays only itself.
type Scheduler struct {
	jobs   []Job
	logger *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an empty scheduler
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Add registers a job. Must be called before Start.
func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Run: run})
}

// Start launches one goroutine per job. Each job also runs once shortly
// after startup so a restart does not postpone alerts by a full interval.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	execute := func() {
		if err := job.Run(ctx); err != nil {
			s.logger.Error("scheduled job failed",
				zap.String("job", job.Name),
				zap.Error(err))
		}
	}

	startup := time.NewTimer(5 * time.Second)
	defer startup.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-startup.C:
			execute()
		case <-ticker.C:
			execute()
		}
	}
}

// Stop cancels all jobs and waits for in-flight runs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}
