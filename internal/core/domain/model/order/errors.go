package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lifecycle failure taxonomy. Typed errors below
// unwrap to these so callers can classify with errors.Is.
//
// All of them are synchronous and non-retryable: the caller must pick a
// different target or act in a different role. ErrAlreadyAssigned is the one
// expected under normal concurrent operation (couriers racing for the same
// ready order) and means "try another order", not a system fault.
var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrUnauthorizedTransition = errors.New("unauthorized transition")
	ErrNotCancellable         = errors.New("order is not cancellable")
	ErrAlreadyAssigned        = errors.New("order is already assigned")
	ErrProofInvalid           = errors.New("delivery proof is invalid")
)

// InvalidTransitionError indicates the requested edge does not exist in the
// transition table, including any move out of a terminal status.
type InvalidTransitionError struct {
	From Status
	To   Status
	Role Role
}

// NewInvalidTransitionError creates an InvalidTransitionError for the failed edge.
func NewInvalidTransitionError(from, to Status, role Role) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role}
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not a legal transition (requested by %s)",
		ErrInvalidTransition, e.From, e.To, e.Role)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedTransitionError indicates a legal edge requested by a role the
// transition table does not authorize for it. Distinct from
// InvalidTransitionError: same target status, wrong actor.
type UnauthorizedTransitionError struct {
	From Status
	To   Status
	Role Role
}

// NewUnauthorizedTransitionError creates an UnauthorizedTransitionError for the failed edge.
func NewUnauthorizedTransitionError(from, to Status, role Role) *UnauthorizedTransitionError {
	return &UnauthorizedTransitionError{From: from, To: to, Role: role}
}

// Error implements the error interface.
func (e *UnauthorizedTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is not authorized to transition %s -> %s",
		ErrUnauthorizedTransition, e.Role, e.From, e.To)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *UnauthorizedTransitionError) Unwrap() error {
	return ErrUnauthorizedTransition
}

// NotCancellableError indicates a cancellation attempt on an order that is
// already preparing or further along.
type NotCancellableError struct {
	Current Status
}

// NewNotCancellableError creates a NotCancellableError for the current status.
func NewNotCancellableError(current Status) *NotCancellableError {
	return &NotCancellableError{Current: current}
}

// Error implements the error interface.
func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("%s: status is %s, cancellation is only allowed while pending or confirmed",
		ErrNotCancellable, e.Current)
}

// Unwrap returns the sentinel error for use with errors.Is.
func (e *NotCancellableError) Unwrap() error {
	return ErrNotCancellable
}
