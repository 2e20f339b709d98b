package jobs

import (
	"fmt"
	"log/slog"

	"grocery/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	proofCleanupJob *ProofCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(proofs ports.ProofStore, logger *slog.Logger) *JobManager {
	return &JobManager{
		proofCleanupJob: NewProofCleanupJob(proofs, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.proofCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start proof cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.proofCleanupJob.Stop()
}
