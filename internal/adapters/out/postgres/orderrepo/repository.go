package orderrepo

import (
	"context"
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// All writes are status conditional so concurrent transition requests
// against the same order cannot both win.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database together with its initial history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if rows := historyFromDomain(aggregate, 0); len(rows) > 0 {
		if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order conditional on the stored status still being
// expectedStatus, and appends the history entries added since the load.
// A stale expectation fails with errs.ErrVersionIsInvalid and writes nothing.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedStatus)).
		Select("CourierID", "Status", "CancelReason", "CancelledAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order status")
	}

	if err := r.appendNewHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Claim atomically assigns a ready, unclaimed order to the aggregate's
// courier. The single conditional write is what makes first-come-first-served
// claiming safe; when another courier won the race it fails with
// order.ErrAlreadyAssigned and writes nothing.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND courier_id IS NULL", dto.ID, int(order.Ready)).
		Select("CourierID", "Status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return order.ErrAlreadyAssigned
	}

	if err := r.appendNewHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its full status history by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	historyRows, err := r.historyFor(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyRows)
}

// appendNewHistory inserts the history entries the aggregate gained since it
// was loaded. History rows are append only, so the count of stored rows tells
// where the new entries start.
func (r *GormOrderRepository) appendNewHistory(ctx context.Context, aggregate *order.Order) error {
	var stored int64
	err := r.db.WithContext(ctx).Model(&HistoryDTO{}).
		Where("order_id = ?", aggregate.ID().Bytes()).
		Count(&stored).Error
	if err != nil {
		return err
	}

	rows := historyFromDomain(aggregate, int(stored))
	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *GormOrderRepository) historyFor(ctx context.Context, orderID uuid.UUID) ([]HistoryDTO, error) {
	var rows []HistoryDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&rows, "order_id = ?", orderID).
		Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
