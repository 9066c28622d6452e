package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/logger"
)

const (
	defaultRetention = 90 * 24 * time.Hour
	defaultSchedule  = "@daily"
)

// Cleaner prunes aged audit log entries on a schedule.
type Cleaner struct {
	audit     *services.AuditService
	cron      *cron.Cron
	now       func() time.Time
	log       *zap.Logger
	retention time.Duration
	schedule  string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for retention comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithRetention adjusts how long audit logs are kept before pruning.
func WithRetention(d time.Duration) Option {
	return func(cleaner *Cleaner) {
		if d > 0 {
			cleaner.retention = d
		}
	}
}

// WithSchedule overrides the cron expression for the pruning job.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults.
func NewCleaner(audit *services.AuditService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		audit:     audit,
		now:       time.Now,
		retention: defaultRetention,
		schedule:  defaultSchedule,
		log:       logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the pruning job and launches the scheduler.
func (c *Cleaner) Start() error {
	if c.audit == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("audit prune failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any running job to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce prunes immediately. Used by tests and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if c.audit == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cutoff := c.now().Add(-c.retention)
	removed, err := c.audit.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		c.log.Info("pruned audit logs",
			zap.Int64("removed", removed),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}
