package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	escalationSweepJob *EscalationSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(manager sweeper, logger *slog.Logger) *JobManager {
	return &JobManager{
		escalationSweepJob: NewEscalationSweepJob(manager, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.escalationSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start escalation sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.escalationSweepJob.Stop()
}
