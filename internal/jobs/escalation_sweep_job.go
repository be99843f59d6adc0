package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// sweeper re-arms escalation timers from the current storage state.
type sweeper interface {
	Sweep(ctx context.Context) error
}

// EscalationSweepJob periodically reconciles escalation timers with the
// orders table. In-process timers disappear on restart; the sweep re-arms
// them for every order still awaiting a courier, so a deploy never silently
// swallows an escalation.
type EscalationSweepJob struct {
	manager sweeper
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEscalationSweepJob creates a job that sweeps once a minute.
func NewEscalationSweepJob(manager sweeper, logger *slog.Logger) *EscalationSweepJob {
	return &EscalationSweepJob{
		manager: manager,
		cron:    cron.New(),
		logger:  logger.With("component", "escalation_sweep_job"),
	}
}

// Start begins the sweep schedule and runs one sweep immediately so orders
// stalled across a restart are picked up without waiting a full interval.
func (j *EscalationSweepJob) Start() error {
	ctx := context.Background()
	if err := j.manager.Sweep(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Initial escalation sweep failed", "error", err)
	}

	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.manager.Sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Escalation sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Escalation sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep schedule.
func (j *EscalationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Escalation sweep job stopped")
}
