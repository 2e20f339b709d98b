package order

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Status represents the lifecycle state of a grocery order.
// It implements a state machine with a single authoritative transition table
// so that every caller (customer, vendor, courier, admin surfaces) enforces
// the same workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> assigned ──> picked_up ──> on_the_way ──> delivered ──┐
//	   │            │                         ▲          │                                                  ▼
//	   │            │                         └──────────┘                                              refunded
//	   │            │                     (courier rejection)                                               ▲
//	   └────────────┴──> cancelled ─────────────────────────────────────────────────────────────────────────┘
//	                                                                              (admin, payment reversal)
//
// delivered, cancelled and refunded are terminal: no transition leaves them
// except the admin-only refund edge out of delivered and cancelled.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set by the checkout flow.
	// The order waits for the vendor to confirm it.
	Pending

	// Confirmed means the vendor accepted the order.
	Confirmed

	// Preparing means the vendor is picking and packing the order.
	// From here on the order can no longer be cancelled.
	Preparing

	// Ready means the order is packed and waits, unclaimed, for a courier.
	Ready

	// Assigned means a courier claimed the order. The claim is exclusive:
	// concurrent claims on the same ready order admit at most one winner.
	Assigned

	// PickedUp means the courier collected the order from the store.
	// The courier reference is immutable from this point on.
	PickedUp

	// OnTheWay means the courier is en route to the customer.
	OnTheWay

	// Delivered means the customer received the order, proven by a
	// delivery code. Terminal apart from the admin refund edge.
	Delivered

	// Cancelled means the customer or vendor cancelled the order before
	// preparation started. Terminal apart from the admin refund edge.
	Cancelled

	// Refunded means an admin reversed the payment. Terminal.
	Refunded
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		OnTheWay:  "on_the_way",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Refunded:  "refunded",
	}
}

func getValidStatusNames() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		OnTheWay:  "on_the_way",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Refunded:  "refunded",
	}
}

// transition is one edge of the state machine.
type transition struct {
	from Status
	to   Status
}

// getTransitionRoles returns the authoritative transition table: every legal
// edge mapped to the roles allowed to trigger it. Any (from, to) pair absent
// from this table is illegal for every role.
func getTransitionRoles() map[transition][]Role {
	return map[transition][]Role{
		{Pending, Confirmed}:   {RoleVendor},
		{Pending, Cancelled}:   {RoleCustomer, RoleVendor},
		{Confirmed, Preparing}: {RoleVendor},
		{Confirmed, Cancelled}: {RoleCustomer, RoleVendor},
		{Preparing, Ready}:     {RoleVendor},
		{Ready, Assigned}:      {RoleCourier},
		{Assigned, Ready}:      {RoleCourier}, // rejection, order goes back to the unclaimed pool
		{Assigned, PickedUp}:   {RoleCourier},
		{PickedUp, OnTheWay}:   {RoleCourier},
		{OnTheWay, Delivered}:  {RoleCourier},
		{Delivered, Refunded}:  {RoleAdmin},
		{Cancelled, Refunded}:  {RoleAdmin},
	}
}

// StatusFromString parses a wire-format status name ("pending", "picked_up",
// ...). Returns an error for anything else, including "unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusNames() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined order statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format status name.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether the status ends the regular lifecycle.
// The admin refund edge out of delivered and cancelled is a payment-reversal
// exception and is still resolved through the transition table.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// IsCancellable reports whether the order may still be cancelled.
// Cancellation is only legal before preparation starts.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Confirmed
}

// CanTransitionTo reports whether the edge from s to target exists in the
// transition table, ignoring role authorization.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := getTransitionRoles()[transition{from: s, to: target}]
	return ok
}

// TransitionTo resolves one step of the state machine.
//
// The checks run in a fixed order so callers get the most specific failure:
//  1. target must be a defined status;
//  2. cancelling outside pending/confirmed fails with NotCancellableError
//     (stale vendor or customer UI, actionable message);
//  3. any edge missing from the table fails with InvalidTransitionError,
//     which also covers every move out of a terminal status except the
//     admin refund edges;
//  4. a legal edge triggered by the wrong role fails with
//     UnauthorizedTransitionError.
//
// On success it returns the target status. It never mutates s.
func (s Status) TransitionTo(target Status, role Role) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	roles, legal := getTransitionRoles()[transition{from: s, to: target}]

	if target == Cancelled && !legal && !s.IsTerminal() {
		return Unknown, NewNotCancellableError(s)
	}
	if !legal {
		return Unknown, NewInvalidTransitionError(s, target, role)
	}

	for _, authorized := range roles {
		if role == authorized {
			return target, nil
		}
	}

	return Unknown, NewUnauthorizedTransitionError(s, target, role)
}
