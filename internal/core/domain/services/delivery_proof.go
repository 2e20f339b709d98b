package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"golang.org/x/crypto/bcrypt"
)

const (
	// proofCodeDigits is the length of the numeric delivery code sent to
	// the customer at pickup.
	proofCodeDigits = 6

	// ProofTTL bounds how long an issued code stays valid. Picked to cover
	// a long delivery run; expired codes fail verification.
	ProofTTL = 4 * time.Hour

	// MaxProofAttempts limits verification tries per issued code.
	// Exceeding it burns the code.
	MaxProofAttempts = 5
)

// DeliveryProof is an issued delivery-completion credential: the order it
// belongs to, the bcrypt hash of the code, and its validity bounds. The
// plain code leaves the process only through the notification event to the
// customer and is never stored.
type DeliveryProof struct {
	OrderID   kernel.UUID
	CodeHash  string
	ExpiresAt time.Time
	Attempts  int
}

// ProofService issues and verifies delivery codes for the
// on_the_way -> delivered transition. It is stateless; callers persist the
// issued DeliveryProof and pass it back for verification.
type ProofService struct{}

// NewProofService creates a ProofService.
func NewProofService() *ProofService {
	return &ProofService{}
}

// Issue generates a fresh numeric code for the order and returns the plain
// code together with the storable proof record. The plain code goes to the
// customer; the record keeps only the hash.
func (s *ProofService) Issue(orderID kernel.UUID) (string, DeliveryProof, error) {
	code, err := generateCode()
	if err != nil {
		return "", DeliveryProof{}, fmt.Errorf("generating delivery code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", DeliveryProof{}, fmt.Errorf("hashing delivery code: %w", err)
	}

	return code, DeliveryProof{
		OrderID:   orderID,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().UTC().Add(ProofTTL),
	}, nil
}

// Verify checks a presented code against an issued proof. Expired codes,
// exhausted attempt budgets and mismatches all fail with ErrProofInvalid;
// the caller must not advance the order in any of these cases.
func (s *ProofService) Verify(proof DeliveryProof, code string) error {
	if time.Now().UTC().After(proof.ExpiresAt) {
		return order.ErrProofInvalid
	}
	if proof.Attempts >= MaxProofAttempts {
		return order.ErrProofInvalid
	}
	if code == "" {
		return order.ErrProofInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(proof.CodeHash), []byte(code)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return order.ErrProofInvalid
		}
		return err
	}

	return nil
}

// generateCode produces a uniformly random numeric code with leading zeros
// preserved, using crypto/rand.
func generateCode() (string, error) {
	limit := big.NewInt(1)
	for range proofCodeDigits {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", proofCodeDigits, n), nil
}
