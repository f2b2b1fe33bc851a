package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ResetTokenCleanupJob sweeps password-reset tokens that expired without
// being used. An expired token can no longer reset a password, but its digest
// would otherwise stay on the account row indefinitely.
type ResetTokenCleanupJob struct {
	handler commands.CleanupResetTokensCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewResetTokenCleanupJob creates the hourly token sweep job.
func NewResetTokenCleanupJob(handler commands.CleanupResetTokensCommandHandler, logger *slog.Logger) *ResetTokenCleanupJob {
	return &ResetTokenCleanupJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "reset_token_cleanup_job"),
	}
}

// Start schedules the sweep to run at the top of every hour.
func (j *ResetTokenCleanupJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cmd, err := commands.NewCleanupResetTokensCommand(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Reset token cleanup job failed to build command", "error", err)
			return
		}

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reset token cleanup job failed", "error", err)
			return
		}

		if swept > 0 {
			j.logger.InfoContext(ctx, "Cleared expired reset tokens", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reset token cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *ResetTokenCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reset token cleanup job stopped")
}
