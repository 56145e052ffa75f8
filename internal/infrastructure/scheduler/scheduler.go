// Package scheduler runs background jobs on a small worker pool and
// triggers them once a day.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSchedulerNotRunning = errors.New("scheduler is not running")
	ErrJobQueueFull        = errors.New("job queue is full")
	// ErrInvalidSchedule is returned for a schedule that is not "minute hour * * *"
	ErrInvalidSchedule = errors.New("invalid schedule")
)

// JobFunc is the work a job performs. It must honour ctx cancellation.
type JobFunc func(ctx context.Context) error

// Job is one submission of a named task. A failed job is put back on the
// queue until it has been attempted 1+MaxRetries times.
type Job struct {
	ID         uuid.UUID
	Name       string
	Run        JobFunc
	Attempts   int
	MaxRetries int
	LastError  error
	notBefore  time.Time
}

// Config holds scheduler configuration
type Config struct {
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	QueueSize         int
}

const defaultQueueSize = 16

// Scheduler executes submitted jobs on a fixed pool of workers
type Scheduler struct {
	config Config
	logger *zap.Logger
	queue  chan *Job

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler(config Config, logger *zap.Logger) *Scheduler {
	config.MaxConcurrentJobs = max(config.MaxConcurrentJobs, 1)
	if config.QueueSize <= 0 {
		config.QueueSize = defaultQueueSize
	}
	return &Scheduler{
		config: config,
		logger: logger.Named("scheduler"),
		queue:  make(chan *Job, config.QueueSize),
	}
}

// Start launches the workers. Calling it on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	for id := range s.config.MaxConcurrentJobs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.work(ctx, id)
		}()
	}
	s.logger.Info("Scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
		zap.Int("retry_attempts", s.config.RetryAttempts),
	)
	return nil
}

// Stop cancels running jobs and waits for the workers, up to ctx's deadline.
// Jobs still queued are dropped.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler did not stop in time", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Submit queues run under name without blocking
func (s *Scheduler) Submit(name string, run JobFunc) (*Job, error) {
	job := &Job{ID: uuid.New(), Name: name, Run: run, MaxRetries: s.config.RetryAttempts}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil, ErrSchedulerNotRunning
	}
	if !s.enqueue(job) {
		return nil, ErrJobQueueFull
	}
	s.logger.Debug("Job queued", zap.String("job", name), zap.String("job_id", job.ID.String()))
	return job, nil
}

func (s *Scheduler) enqueue(job *Job) bool {
	select {
	case s.queue <- job:
		return true
	default:
		return false
	}
}

func (s *Scheduler) work(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-s.queue:
			if !sleepUntil(ctx, job.notBefore) {
				return
			}
			s.execute(ctx, job, workerID)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job *Job, workerID int) {
	log := s.logger.With(
		zap.String("job", job.Name),
		zap.String("job_id", job.ID.String()),
		zap.Int("worker_id", workerID),
	)
	job.Attempts++
	log.Info("Job started", zap.Int("attempt", job.Attempts))

	runCtx := ctx
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	started := time.Now()
	job.LastError = job.Run(runCtx)
	if job.LastError == nil {
		log.Info("Job finished", zap.Duration("duration", time.Since(started)))
		return
	}
	log.Error("Job failed", zap.Int("attempt", job.Attempts), zap.Error(job.LastError))

	if job.Attempts > job.MaxRetries || ctx.Err() != nil {
		return
	}
	job.notBefore = time.Now().Add(s.config.RetryDelay)
	if !s.enqueue(job) {
		log.Warn("Retry dropped, queue is full")
		return
	}
	log.Info("Job retry scheduled", zap.Time("not_before", job.notBefore))
}

// sleepUntil waits for t and reports false when ctx ends first
func sleepUntil(ctx context.Context, t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
