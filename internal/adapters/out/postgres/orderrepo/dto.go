// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and courier assignment.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       string     `gorm:"uniqueIndex"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	StoreID      uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	Subtotal     int64
	DeliveryFee  int64
	Discount     int64
	Tax          int64
	Total        int64
	Status       int `gorm:"index"`
	CancelReason string
	CancelledAt  *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryDTO represents one row of an order's status trail. Rows are append
// only; the serial primary key preserves insertion order.
type HistoryDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	At        time.Time
	ActorRole int
	ActorID   uuid.UUID `gorm:"type:uuid"`
	Note      string
}

// TableName specifies the database table name for history entries.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional courier assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	totals := aggregate.Totals()

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		CustomerID:   aggregate.Customer().Bytes(),
		StoreID:      aggregate.Store().Bytes(),
		CourierID:    courierID,
		Subtotal:     totals.Subtotal().Amount(),
		DeliveryFee:  totals.DeliveryFee().Amount(),
		Discount:     totals.Discount().Amount(),
		Tax:          totals.Tax().Amount(),
		Total:        totals.Total().Amount(),
		Status:       int(aggregate.Status()),
		CancelReason: aggregate.CancelReason(),
		CancelledAt:  aggregate.CancelledAt(),
	}
}

// historyFromDomain converts the aggregate's history entries starting at
// offset to database rows. Update passes the count of already persisted rows
// so only new entries are appended.
func historyFromDomain(aggregate *order.Order, offset int) []HistoryDTO {
	entries := aggregate.History()
	if offset > len(entries) {
		offset = len(entries)
	}

	rows := make([]HistoryDTO, 0, len(entries)-offset)
	for _, entry := range entries[offset:] {
		rows = append(rows, HistoryDTO{
			OrderID:   aggregate.ID().Bytes(),
			Status:    int(entry.Status()),
			At:        entry.At(),
			ActorRole: int(entry.Actor().Role()),
			ActorID:   entry.Actor().ID().Bytes(),
			Note:      entry.Note(),
		})
	}

	return rows
}

// toDomain converts database rows to an order domain aggregate.
// Reconstructs the complete aggregate including its history using RestoreOrder.
func toDomain(dto OrderDTO, historyRows []HistoryDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	totals, err := totalsToDomain(dto)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(historyRows)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		storeID,
		courierID,
		totals,
		order.Status(dto.Status),
		history,
		dto.CancelReason,
		dto.CancelledAt,
	)
}

func totalsToDomain(dto OrderDTO) (kernel.OrderTotals, error) {
	amounts := make([]kernel.Money, 0, 5)
	for _, raw := range []int64{dto.Subtotal, dto.DeliveryFee, dto.Discount, dto.Tax, dto.Total} {
		m, err := kernel.NewMoney(raw)
		if err != nil {
			return kernel.OrderTotals{}, err
		}
		amounts = append(amounts, m)
	}

	return kernel.NewOrderTotals(amounts[0], amounts[1], amounts[2], amounts[3], amounts[4])
}

func historyToDomain(rows []HistoryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		actorID, err := kernel.UUIDFromBytes(row.ActorID[:])
		if err != nil {
			return nil, err
		}

		actor, err := order.NewActor(order.Role(row.ActorRole), actorID)
		if err != nil {
			return nil, err
		}

		entry, err := order.NewHistoryEntry(order.Status(row.Status), row.At, actor, row.Note)
		if err != nil {
			return nil, err
		}

		history = append(history, entry)
	}

	return history, nil
}
