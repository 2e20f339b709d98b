package queries

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var (
	ErrGetClaimableOrdersQueryIsNotConstructed = errors.New(
		"GetClaimableOrdersQuery must be created via NewGetClaimableOrdersQuery constructor",
	)
)

// GetClaimableOrdersQuery retrieves the orders couriers can pick from: ready
// for pickup and not yet claimed by anyone. This feed backs the courier app's
// available-jobs list.
//
// Example:
//
//	query := NewGetClaimableOrdersQuery()
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get claimable orders: %w", err)
//	}
type GetClaimableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetClaimableOrdersQuery creates a query to retrieve claimable orders.
// This is a parameterless query.
func NewGetClaimableOrdersQuery() GetClaimableOrdersQuery {
	return GetClaimableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClaimableOrdersQueryIsNotConstructed)
}

// GetClaimableOrdersQueryResponse is one order a courier can claim.
type GetClaimableOrdersQueryResponse struct {
	ID      kernel.UUID
	Number  string
	StoreID kernel.UUID
	Total   int64
}
