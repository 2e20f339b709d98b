package proofrepo

import (
	"context"
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/services"
	"grocery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProofStore implements ProofStore using GORM.
type GormProofStore struct {
	db *gorm.DB
}

// NewGormProofStore creates a new GORM proof store.
func NewGormProofStore(db *gorm.DB) *GormProofStore {
	return &GormProofStore{db: db}
}

// Save stores the proof for an order, replacing any previous one.
func (s *GormProofStore) Save(ctx context.Context, proof services.DeliveryProof) error {
	if err := proof.OrderID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(proof)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// Get retrieves the current proof for an order.
// Returns errs.ErrObjectNotFound if none was issued.
func (s *GormProofStore) Get(ctx context.Context, orderID kernel.UUID) (services.DeliveryProof, error) {
	if err := orderID.Validate(); err != nil {
		return services.DeliveryProof{}, err
	}

	var dto ProofDTO
	if err := s.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.DeliveryProof{}, errs.NewObjectNotFoundError("delivery proof", orderID.String())
		}
		return services.DeliveryProof{}, err
	}

	return toDomain(dto)
}

// IncrementAttempts bumps the failed-verification counter for an order's proof.
func (s *GormProofStore) IncrementAttempts(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&ProofDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery proof", orderID.String())
	}

	return nil
}

// Delete removes the proof once it was used or the order left the delivery flow.
// Deleting a missing proof is not an error.
func (s *GormProofStore) Delete(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Delete(&ProofDTO{}, "order_id = ?", orderID.Bytes()).Error
}

// DeleteExpired purges proofs whose expiry passed before now and returns how
// many were removed.
func (s *GormProofStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Delete(&ProofDTO{}, "expires_at < ?", now)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
