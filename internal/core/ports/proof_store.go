package ports

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/services"
)

// ProofStore defines the persistence contract for delivery proofs. Proofs
// live in durable storage with an expiry, not in process memory, so
// verification survives restarts and works across server instances.
type ProofStore interface {
	// Save stores the proof for an order, replacing any previous one.
	// Reissuing a code (a rejected order claimed again) overwrites.
	Save(ctx context.Context, proof services.DeliveryProof) error

	// Get retrieves the current proof for an order.
	// Returns errs.ErrObjectNotFound if none was issued.
	Get(ctx context.Context, orderID kernel.UUID) (services.DeliveryProof, error)

	// IncrementAttempts bumps the failed-verification counter.
	IncrementAttempts(ctx context.Context, orderID kernel.UUID) error

	// Delete removes the proof once it was used or the order left the
	// delivery flow.
	Delete(ctx context.Context, orderID kernel.UUID) error

	// DeleteExpired purges proofs whose expiry passed before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
