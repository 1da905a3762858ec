package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingOrderSweepJob periodically re-announces orders stuck in Pending.
// Runs every minute so an owner who reconnects hears about waiting orders
// within a minute of the sweep threshold passing.
type PendingOrderSweepJob struct {
	handler commands.SweepPendingOrdersCommandHandler
	maxAge  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPendingOrderSweepJob creates the sweep job. maxAge controls how long an
// order must have been pending before a sweep re-announces it.
func NewPendingOrderSweepJob(
	handler commands.SweepPendingOrdersCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *PendingOrderSweepJob {
	return &PendingOrderSweepJob{
		handler: handler,
		maxAge:  maxAge,
		cron:    cron.New(),
		logger:  logger.With("component", "pending_order_sweep_job"),
	}
}

// Start begins the sweep job, running every minute.
func (j *PendingOrderSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepPendingOrdersCommand(j.maxAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order sweep misconfigured", "error", err)
			return
		}

		count, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order sweep failed", "error", err)
			return
		}

		if count > 0 {
			j.logger.InfoContext(ctx, "Re-announced pending orders", "count", count)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *PendingOrderSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order sweep job stopped")
}
