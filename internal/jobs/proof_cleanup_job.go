package jobs

import (
	"context"
	"log/slog"
	"time"

	"grocery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ProofCleanupJob purges expired delivery codes from storage.
// Runs every minute; expired codes already fail verification, so the purge
// only reclaims space and keeps the attempt counters honest.
type ProofCleanupJob struct {
	proofs ports.ProofStore
	cron   *cron.Cron
	logger *slog.Logger
}

// NewProofCleanupJob creates a new job for purging expired delivery proofs.
func NewProofCleanupJob(proofs ports.ProofStore, logger *slog.Logger) *ProofCleanupJob {
	return &ProofCleanupJob{
		proofs: proofs,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "proof_cleanup_job"),
	}
}

// Start begins the proof cleanup job to run every minute.
func (j *ProofCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		purged, err := j.proofs.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Proof cleanup job failed", "error", err)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged expired delivery proofs", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Proof cleanup job started (running every minute)")
	return nil
}

// Stop stops the proof cleanup job.
func (j *ProofCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Proof cleanup job stopped")
}
