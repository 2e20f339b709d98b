package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes go through status-conditional updates so that concurrent transition
// requests against the same order cannot both win.
type OrderRepository interface {
	// Add persists a new order aggregate, including its initial history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its full status history.
	// Returns errs.ErrObjectNotFound if no order has the given ID.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists the aggregate's status fields and appends the new
	// history entries, conditional on the stored status still being
	// expectedStatus. A stale expectation fails with
	// errs.ErrVersionIsInvalid and writes nothing.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Claim atomically assigns a ready, unclaimed order to the aggregate's
	// courier: one conditional write matching on status being ready and the
	// courier being unset. When another courier won the race it fails with
	// order.ErrAlreadyAssigned and writes nothing.
	Claim(ctx context.Context, aggregate *order.Order) error
}
