package application

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/WangYihang/discovery-pinger/pkg/domain/repository"
)

// Task is one scheduled run
type Task func(ctx context.Context) error

// ScheduleConfig holds the recurrence policy
type ScheduleConfig struct {
	Interval time.Duration
	// InitialDelay before the first run; zero picks a random delay within one interval
	InitialDelay time.Duration
	// Once runs a single pass immediately and returns
	Once bool
}

// Scheduler runs a task on a fixed interval
type Scheduler struct {
	config   ScheduleConfig
	recorder repository.RunRecorder
	logger   *slog.Logger
}

// NewScheduler creates a scheduler. recorder may be nil.
func NewScheduler(config ScheduleConfig, recorder repository.RunRecorder, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Interval <= 0 {
		config.Interval = 24 * time.Hour
	}
	return &Scheduler{config: config, recorder: recorder, logger: logger}
}

// FirstDelay returns the delay before the first run
func (s *Scheduler) FirstDelay() time.Duration {
	if s.config.Once {
		return 0
	}
	if s.config.InitialDelay > 0 {
		return s.config.InitialDelay
	}
	return rand.N(s.config.Interval)
}

// Start runs task until ctx is cancelled. Task errors are logged and the
// schedule continues. In Once mode the task error is returned.
func (s *Scheduler) Start(ctx context.Context, task Task) error {
	if s.config.Once {
		return s.runOnce(ctx, task)
	}

	delay := s.FirstDelay()
	s.logger.Info("scheduled discovery", "first_run_in", delay, "interval", s.config.Interval)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			s.runOnce(ctx, task)
			timer.Reset(s.config.Interval)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, task Task) error {
	started := time.Now()
	err := task(ctx)
	if s.recorder != nil {
		s.recorder.RecordRun(err)
	}
	if err != nil {
		s.logger.Error("discovery run failed", "error", err)
		return err
	}
	s.logger.Debug("discovery run completed", "took", time.Since(started))
	return nil
}
