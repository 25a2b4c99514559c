package jobs

import (
	"context"
	"log/slog"
	"time"

	"expedition/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// stalePendingThreshold is how long a request may sit in pending status
// before the reminder fires.
const stalePendingThreshold = 48 * time.Hour

// StalePendingJob reminds agency staff about pending requests nobody has
// decided on. Runs hourly.
type StalePendingJob struct {
	handler commands.NotifyStalePendingCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStalePendingJob creates a new job for surfacing stale pending requests.
func NewStalePendingJob(handler commands.NotifyStalePendingCommandHandler, logger *slog.Logger) *StalePendingJob {
	return &StalePendingJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_pending_job"),
	}
}

// Start begins the stale pending job to run at the top of every hour.
func (j *StalePendingJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale pending job started (running hourly)")
	return nil
}

// run executes one reminder pass over requests pending longer than the threshold.
func (j *StalePendingJob) run(ctx context.Context) {
	cmd, err := commands.NewNotifyStalePendingCommand(stalePendingThreshold)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale pending job misconfigured", "error", err)
		return
	}

	count, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale pending job failed", "error", err)
		return
	}

	if count > 0 {
		j.logger.InfoContext(ctx, "Stale pending requests flagged", "count", count)
	}
}

// Stop stops the stale pending job.
func (j *StalePendingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale pending job stopped")
}
