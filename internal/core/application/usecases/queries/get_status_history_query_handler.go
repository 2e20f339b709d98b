package queries

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusHistoryQueryHandler reads an order's status trail straight from
// the database, bypassing the aggregate. History rows are append only, so
// reading them outside a transaction is safe.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle executes the query and returns the entries in the order they were
// appended. Returns errs.ErrObjectNotFound when no order has the given ID.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(1) FROM orders WHERE id = ?
	`, query.OrderID().String()).Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	entries := make([]GetStatusHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			at,
			actor_role,
			actor_id,
			note
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetStatusHistoryQueryResponse
		var status, actorRole int
		var at time.Time
		var actorID uuid.UUID
		var note string

		err = rows.Scan(
			&status,
			&at,
			&actorRole,
			&actorID,
			&note,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		entry.Status = order.Status(status)
		entry.At = at
		entry.ActorRole = order.Role(actorRole)
		entry.ActorID = id
		entry.Note = note
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
