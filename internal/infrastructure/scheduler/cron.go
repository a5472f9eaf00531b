package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"IssueRadar/internal/ports"
)

// CronScheduler drives recurring aggregation cycles from a cron expression.
type CronScheduler struct {
	spec   string
	logger *log.Logger
	cron   *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler configured via cron expression string.
func NewCronScheduler(spec string, logger *log.Logger) *CronScheduler {
	return &CronScheduler{spec: spec, logger: logger}
}

// Start registers the job and begins ticking on the configured cadence.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if c.cron != nil {
		return nil
	}

	opts := []cron.Option{}
	if c.logger != nil {
		opts = append(opts, cron.WithLogger(cron.VerbosePrintfLogger(c.logger)))
	}
	runner := cron.New(opts...)

	if _, err := runner.AddFunc(c.spec, func() {
		job(time.Now())
	}); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", c.spec, err)
	}

	runner.Start()
	c.cron = runner

	go func() {
		<-ctx.Done()
		runner.Stop()
	}()

	return nil
}

// Stop halts the runner and waits for an in-flight job, bounded by ctx.
func (c *CronScheduler) Stop(ctx context.Context) error {
	if c.cron == nil {
		return nil
	}

	drained := c.cron.Stop()
	c.cron = nil

	select {
	case <-drained.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
