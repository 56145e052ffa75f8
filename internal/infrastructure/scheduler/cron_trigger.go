package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// Hour and Minute are the local time of the daily run
	Hour   int
	Minute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration

	// RunOnStart submits the job once as soon as the trigger starts
	RunOnStart bool
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		Hour:          6,
		Minute:        0,
		CheckInterval: time.Minute,
	}
}

// ParseCronSchedule reads the hour and minute of a daily "minute hour * * *"
// expression. An empty expression keeps the defaults.
func ParseCronSchedule(expr string) (hour, minute int, err error) {
	def := DefaultCronTriggerConfig()
	if strings.TrimSpace(expr) == "" {
		return def.Hour, def.Minute, nil
	}

	parts := strings.Fields(expr)
	if len(parts) != 5 {
		return 0, 0, fmt.Errorf("%w %q: expected 5 fields", ErrInvalidSchedule, expr)
	}
	for _, p := range parts[2:] {
		if p != "*" {
			return 0, 0, fmt.Errorf("%w %q: only daily schedules are supported", ErrInvalidSchedule, expr)
		}
	}

	minute, err = strconv.Atoi(parts[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w %q: minute must be 0-59", ErrInvalidSchedule, expr)
	}
	hour, err = strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w %q: hour must be 0-23", ErrInvalidSchedule, expr)
	}
	return hour, minute, nil
}

// RunClaimer grants a key to one caller until ttl elapses. It lets several
// instances share one daily run.
type RunClaimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

const claimTTL = 24 * time.Hour

// CronTrigger submits a named job to a Scheduler once a day
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	name      string
	run       JobFunc
	claimer   RunClaimer
	logger    *zap.Logger
	now       func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, scheduler *Scheduler, name string, run JobFunc, logger *zap.Logger) *CronTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &CronTrigger{
		config:    config,
		scheduler: scheduler,
		name:      name,
		run:       run,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClaimer makes the daily run conditional on claiming it first
func (c *CronTrigger) WithClaimer(claimer RunClaimer) *CronTrigger {
	c.claimer = claimer
	return c
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.String("job", c.name),
		zap.Int("daily_hour", c.config.Hour),
		zap.Int("daily_minute", c.config.Minute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	if c.config.RunOnStart {
		if err := c.TriggerNow(); err != nil {
			c.logger.Warn("Failed to submit startup run", zap.String("job", c.name), zap.Error(err))
		}
	}
	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped", zap.String("job", c.name))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerNow submits the job immediately, outside the daily schedule
func (c *CronTrigger) TriggerNow() error {
	_, err := c.scheduler.Submit(c.name, c.run)
	return err
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger submits the job when the daily time has been reached and
// it has not run yet today. A run missed while the process was down is
// caught up on the next check of the same day.
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now()
	today := now.Format(time.DateOnly)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastRunDate == today || !c.due(now) {
		return false
	}

	key := c.name + ":" + today
	if c.claimer != nil {
		claimed, err := c.claimer.Claim(ctx, key, claimTTL)
		switch {
		case err != nil:
			// jobs run here are idempotent, so run without the claim
			c.logger.Warn("Run claim failed, running anyway", zap.String("job", c.name), zap.Error(err))
		case !claimed:
			c.lastRunDate = today
			c.logger.Info("Scheduled job already claimed by another instance",
				zap.String("job", c.name),
				zap.String("date", today),
			)
			return false
		}
	}

	if err := c.TriggerNow(); err != nil {
		c.logger.Error("Failed to submit scheduled job", zap.String("job", c.name), zap.Error(err))
		if c.claimer != nil {
			if err := c.claimer.Release(ctx, key); err != nil {
				c.logger.Warn("Failed to release run claim", zap.String("job", c.name), zap.Error(err))
			}
		}
		return false
	}
	c.lastRunDate = today
	c.logger.Info("Scheduled job submitted", zap.String("job", c.name), zap.String("date", today))
	return true
}

func (c *CronTrigger) due(now time.Time) bool {
	if now.Hour() != c.config.Hour {
		return now.Hour() > c.config.Hour
	}
	return now.Minute() >= c.config.Minute
}
