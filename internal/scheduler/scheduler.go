package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// JobFunc represents a function that can be scheduled.
type JobFunc func(ctx context.Context) error

// Scheduler manages recurring background jobs.
type Scheduler struct {
	gocron gocron.Scheduler
	jobs   map[string]gocron.Job
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler.
func New() (*Scheduler, error) {
	gocronScheduler, err := gocron.NewScheduler(gocron.WithLogger(newLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		gocron: gocronScheduler,
		jobs:   make(map[string]gocron.Job),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.gocron.Start()
	for id, job := range s.jobs {
		if nextRun, err := job.NextRun(); err == nil {
			log.Info("Scheduled job", "id", id, "nextRun", nextRun)
		}
	}
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.gocron.Shutdown()
}

// AddSingletonJob adds a job that never runs more than one instance at a
// time. If a run is still going when the next trigger fires, the trigger is
// rescheduled instead of piling up.
func (s *Scheduler) AddSingletonJob(id string, jobDef gocron.JobDefinition, jobFunc JobFunc) error {
	job, err := s.gocron.NewJob(
		jobDef,
		gocron.NewTask(s.wrapJobFunc(id, jobFunc)),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}
	s.jobs[id] = job
	return nil
}

// RunJobNow triggers a job outside its schedule.
func (s *Scheduler) RunJobNow(id string) error {
	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job %s not found", id)
	}
	return job.RunNow()
}

// wrapJobFunc ties the job to the scheduler lifetime and adds run logging.
func (s *Scheduler) wrapJobFunc(id string, jobFunc JobFunc) func() {
	return func() {
		start := time.Now()
		log.Info("Starting job", "id", id)
		if err := jobFunc(s.ctx); err != nil {
			log.Error("Job failed", "id", id, "duration", time.Since(start), "error", err)
			return
		}
		log.Info("Job completed", "id", id, "duration", time.Since(start))
	}
}

// logger adapts the charm logger to the gocron logging interface.
type logger struct {
	log *log.Logger
}

func newLogger() *logger {
	return &logger{
		log: log.Default().WithPrefix("scheduler"),
	}
}

func (l *logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l *logger) Error(msg string, args ...any) {
	l.log.Error(msg, args...)
}

func (l *logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l *logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}
