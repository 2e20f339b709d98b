package order

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root owning the authoritative status of a grocery
// order. It is the only writer of the status and status history fields and
// enforces the transition table on every change.
//
// Order maintains these invariants:
//   - The status history is append-only and starts with the pending entry
//     written at creation.
//   - Each history entry's status is a legal successor of the previous one.
//   - The courier reference is set by the claim, cleared only by rejection
//     before pickup, and immutable from pickup on.
//   - The monetary snapshot is computed at creation and never recomputed.
//   - Terminal statuses admit no further transitions (apart from the
//     admin-only refund edge resolved by the transition table).
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number shown to all parties
	number string

	// customerID references the customer who placed the order
	customerID kernel.UUID

	// storeID references the vendor fulfilling the order
	storeID kernel.UUID

	// courierID is the claiming courier's ID (nil while unclaimed)
	courierID *kernel.UUID

	// totals is the immutable monetary snapshot from checkout
	totals kernel.OrderTotals

	// status is the current state in the order lifecycle
	status Status

	// history is the append-only audit log of every transition
	history []HistoryEntry

	// cancelReason and cancelledAt are set only when the order is cancelled
	cancelReason string
	cancelledAt  *time.Time

	// events collects lifecycle events until the application layer drains them
	events []StatusChangedEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order in pending status with the initial history entry
// attributed to the customer. This is how the checkout flow hands an order to
// the lifecycle manager.
func NewOrder(id kernel.UUID, number string, customerID, storeID kernel.UUID, totals kernel.OrderTotals) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		storeID.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	customer, err := NewActor(RoleCustomer, customerID)
	if err != nil {
		return nil, err
	}

	initial, err := NewHistoryEntry(Pending, time.Now().UTC(), customer, "")
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		number:        number,
		customerID:    customerID,
		storeID:       storeID,
		totals:        totals,
		status:        Pending,
		history:       []HistoryEntry{initial},
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence without running the
// creation workflow. It revalidates the stored state so corrupt rows cannot
// produce an aggregate that violates the invariants.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID, storeID kernel.UUID,
	courierID *kernel.UUID,
	totals kernel.OrderTotals,
	status Status,
	history []HistoryEntry,
	cancelReason string,
	cancelledAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		storeID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := validateCourierForStatus(status, courierID != nil); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}

	return &Order{
		id:            id,
		number:        number,
		customerID:    customerID,
		storeID:       storeID,
		courierID:     courierID,
		totals:        totals,
		status:        status,
		history:       history,
		cancelReason:  cancelReason,
		cancelledAt:   cancelledAt,
		isConstructed: true,
	}, nil
}

// validateCourierForStatus enforces consistency between the status and the
// courier reference: no courier before the claim, a courier from the claim
// through delivery. Cancelled and refunded orders may carry either, depending
// on how far they got.
func validateCourierForStatus(status Status, hasCourier bool) error {
	switch status {
	case Pending, Confirmed, Preparing, Ready:
		if hasCourier {
			return errs.NewValueIsInvalidError("courier must not be set before assignment")
		}
	case Assigned, PickedUp, OnTheWay, Delivered:
		if !hasCourier {
			return errs.NewValueIsInvalidError("courier must be set after assignment")
		}
	default:
	}
	return nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// Customer returns the ID of the customer who placed the order.
func (o *Order) Customer() kernel.UUID {
	return o.customerID
}

// Store returns the ID of the vendor fulfilling the order.
func (o *Order) Store() kernel.UUID {
	return o.storeID
}

// Courier returns the claiming courier's ID, or nil while unclaimed.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Totals returns the immutable monetary snapshot.
func (o *Order) Totals() kernel.OrderTotals {
	return o.totals
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history, oldest first.
// Never empty: creation writes the pending entry.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// CancelReason returns the cancellation reason, or "" if not cancelled.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// CancelledAt returns when the order was cancelled, or nil if not cancelled.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// PullEvents returns the lifecycle events recorded since the last drain and
// clears the internal buffer. The application layer publishes them after a
// successful commit.
func (o *Order) PullEvents() []StatusChangedEvent {
	events := o.events
	o.events = nil
	return events
}

// TransitionTo applies one status transition on behalf of an actor.
//
// It resolves the edge against the transition table (role authorization
// included), checks that the actor acts on their own order, applies the
// courier side effects of the claim and rejection edges, appends the history
// entry and records a StatusChangedEvent.
//
// Failures leave the aggregate unchanged:
//   - InvalidTransitionError for edges not in the table, terminal statuses included
//   - NotCancellableError for cancellation from preparing onward
//   - UnauthorizedTransitionError for wrong role or wrong actor identity
//
// Proof verification for the delivered edge and atomicity of the claim edge
// are the application layer's concern; the aggregate validates everything
// that a single in-memory copy can.
func (o *Order) TransitionTo(target Status, actor Actor, note string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target, actor.Role())
	if err != nil {
		return err
	}

	if err = o.validateActorIdentity(target, actor); err != nil {
		return err
	}

	entry, err := NewHistoryEntry(newStatus, time.Now().UTC(), actor, note)
	if err != nil {
		return err
	}

	from := o.status

	switch {
	case newStatus == Assigned:
		courierID := actor.ID()
		o.courierID = &courierID
	case from == Assigned && newStatus == Ready:
		o.courierID = nil
	case newStatus == Cancelled:
		at := entry.At()
		o.cancelReason = note
		o.cancelledAt = &at
	}

	o.status = newStatus
	o.history = append(o.history, entry)
	o.events = append(o.events, StatusChangedEvent{
		OrderID:     o.id,
		OrderNumber: o.number,
		From:        from,
		To:          newStatus,
		ActorRole:   actor.Role(),
		ActorID:     actor.ID(),
		At:          entry.At(),
	})

	return nil
}

// validateActorIdentity checks that the actor is a party to this order:
// customers act on their own orders, vendors on their own store's orders,
// couriers on the order they claimed. The claim itself is open to any
// courier, and admins are trusted by role.
func (o *Order) validateActorIdentity(target Status, actor Actor) error {
	switch actor.Role() {
	case RoleCustomer:
		if !actor.ID().IsEqual(o.customerID) {
			return NewUnauthorizedTransitionError(o.status, target, actor.Role())
		}
	case RoleVendor:
		if !actor.ID().IsEqual(o.storeID) {
			return NewUnauthorizedTransitionError(o.status, target, actor.Role())
		}
	case RoleCourier:
		// Claiming an unclaimed order is open to any courier; every other
		// courier edge requires the assigned courier.
		if o.courierID != nil && !actor.ID().IsEqual(*o.courierID) {
			return NewUnauthorizedTransitionError(o.status, target, actor.Role())
		}
	default:
	}
	return nil
}
