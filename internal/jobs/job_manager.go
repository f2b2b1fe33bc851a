package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	resetTokenCleanupJob *ResetTokenCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	cleanupHandler commands.CleanupResetTokensCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		resetTokenCleanupJob: NewResetTokenCleanupJob(cleanupHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.resetTokenCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start reset token cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.resetTokenCleanupJob.Stop()
}
