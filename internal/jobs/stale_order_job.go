package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob periodically cancels POSTED orders that no carrier picked
// up. Runs hourly; the time-to-live comes from configuration.
type StaleOrderJob struct {
	handler commands.CancelStaleOrdersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderJob creates the stale-order sweep job.
func NewStaleOrderJob(
	handler commands.CancelStaleOrdersCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(),
		logger:  logger.With("component", "stale_order_job"),
	}
}

// Start schedules the sweep to run at the top of every hour.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStaleOrdersCommand(j.ttl)
		if err != nil {
			j.logger.ErrorContext(ctx, "stale order sweep misconfigured", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "stale order sweep failed", "error", err)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "stale orders cancelled", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "stale order job started", "ttl", j.ttl.String())
	return nil
}

// Stop stops the sweep.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "stale order job stopped")
}
