package main

import (
	"context"
	"time"

	alertapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/alert"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/cache"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

const expiryScanJob = "expiry_scan"

// newRunClaimer shares the blacklist's Redis client when there is one, so
// that only one instance runs each daily scan
func newRunClaimer(blacklist auth.TokenBlacklist) (scheduler.RunClaimer, func() error) {
	if rb, ok := blacklist.(*auth.RedisTokenBlacklist); ok {
		return cache.NewRedisRunClaimer(rb.GetClient(), ""), func() error { return nil }
	}
	mem := cache.NewInMemoryRunClaimer()
	return mem, mem.Close
}

// startExpiryScan runs the alert scanner once a day. The returned function
// stops the trigger and then the workers.
func startExpiryScan(ctx context.Context, cfg config.SchedulerConfig, scanner *alertapp.ExpiryScanner, claimer scheduler.RunClaimer, log *zap.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		log.Info("Expiry scan disabled")
		return func(context.Context) error { return nil }, nil
	}

	hour, minute, err := scheduler.ParseCronSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}

	jobs := scheduler.NewScheduler(scheduler.Config{
		MaxConcurrentJobs: cfg.Workers,
		JobTimeout:        cfg.JobTimeout,
		RetryAttempts:     cfg.RetryAttempts,
		RetryDelay:        cfg.RetryDelay,
	}, log)
	if err := jobs.Start(ctx); err != nil {
		return nil, err
	}

	trigger := scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
		Hour:          hour,
		Minute:        minute,
		CheckInterval: cfg.CheckInterval,
		RunOnStart:    cfg.RunOnStart,
	}, jobs, expiryScanJob, func(ctx context.Context) error {
		_, err := scanner.Scan(ctx, time.Now())
		return err
	}, log).WithClaimer(claimer)
	if err := trigger.Start(ctx); err != nil {
		_ = jobs.Stop(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		if err := trigger.Stop(ctx); err != nil {
			return err
		}
		return jobs.Stop(ctx)
	}, nil
}
