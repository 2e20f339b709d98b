// Package proofrepo persists delivery-proof records. Proofs are keyed by
// order: an order has at most one outstanding delivery code, and reissuing
// replaces the previous one.
package proofrepo

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/services"

	"github.com/google/uuid"
)

// ProofDTO represents the database structure for delivery proofs.
// Only the bcrypt hash of the code is stored, never the code itself.
type ProofDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CodeHash  string
	ExpiresAt time.Time `gorm:"index"`
	Attempts  int
}

// TableName specifies the database table name for delivery proofs.
func (ProofDTO) TableName() string {
	return "delivery_proofs"
}

// fromDomain converts a delivery proof to its database representation.
func fromDomain(proof services.DeliveryProof) ProofDTO {
	return ProofDTO{
		OrderID:   proof.OrderID.Bytes(),
		CodeHash:  proof.CodeHash,
		ExpiresAt: proof.ExpiresAt,
		Attempts:  proof.Attempts,
	}
}

// toDomain converts a database DTO to a delivery proof.
func toDomain(dto ProofDTO) (services.DeliveryProof, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return services.DeliveryProof{}, err
	}

	return services.DeliveryProof{
		OrderID:   orderID,
		CodeHash:  dto.CodeHash,
		ExpiresAt: dto.ExpiresAt,
		Attempts:  dto.Attempts,
	}, nil
}
