package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

var (
	ErrInvalidJob = errors.New("invalid scheduled job")
	ErrScheduler  = errors.New("scheduler failure")
)

// Job is a named task run on a fixed interval.
type Job struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler runs maintenance jobs in the background. A job never overlaps
// with itself: a run still in progress when the next tick fires causes that
// tick to be skipped.
type Scheduler struct {
	cron   gocron.Scheduler
	jobs   []Job
	logger *slog.Logger
}

// New creates a Scheduler.
func New(opts ...Option) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.Join(ErrScheduler, err)
	}

	s := &Scheduler{cron: cron, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("scheduler"))
	return s, nil
}

// Add registers a job. It must be called before Run.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Every <= 0 || job.Run == nil {
		return fmt.Errorf("%w: %q every %v", ErrInvalidJob, job.Name, job.Every)
	}
	s.jobs = append(s.jobs, job)
	return nil
}

// Run starts all jobs and blocks until ctx is done, then waits for running
// jobs to return.
func (s *Scheduler) Run(ctx context.Context) error {
	for _, job := range s.jobs {
		_, err := s.cron.NewJob(
			gocron.DurationJob(job.Every),
			gocron.NewTask(s.task(ctx, job)),
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = s.cron.Shutdown()
			return errors.Join(ErrScheduler, fmt.Errorf("schedule %q: %w", job.Name, err))
		}
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "scheduler started", logger.Count(len(s.jobs)))

	<-ctx.Done()

	if err := s.cron.Shutdown(); err != nil {
		return errors.Join(ErrScheduler, err)
	}
	s.logger.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) task(ctx context.Context, job Job) func() {
	log := s.logger.With(slog.String("job", job.Name))
	return func() {
		if ctx.Err() != nil {
			return
		}
		defer func() {
			if p := recover(); p != nil {
				log.ErrorContext(ctx, "scheduled job panicked", logger.Error(fmt.Errorf("panic: %v", p)))
			}
		}()

		start := time.Now()
		if err := job.Run(ctx); err != nil {
			log.ErrorContext(ctx, "scheduled job failed", logger.Error(err), logger.Duration(time.Since(start)))
			return
		}
		log.DebugContext(ctx, "scheduled job finished", logger.Duration(time.Since(start)))
	}
}
