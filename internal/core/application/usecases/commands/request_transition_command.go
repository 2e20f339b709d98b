package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand represents one actor asking to move one order to
// a new status: a vendor confirming, a courier claiming or advancing a
// delivery, a customer cancelling, an admin refunding.
//
// The optional note ends up in the status history (cancellation reason,
// rejection note). The optional proof code is required only for the
// on_the_way -> delivered edge.
//
// Example:
//
//	actor, _ := order.NewActor(order.RoleVendor, storeID)
//	cmd, err := NewRequestTransitionCommand(orderID, order.Confirmed, actor, "", "")
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	actor     order.Actor
	note      string
	proofCode string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a validated transition request.
// The order ID, the target status and the actor must all be valid.
func NewRequestTransitionCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
	note string,
	proofCode string,
) (RequestTransitionCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
		actor.Validate(),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return RequestTransitionCommand{
		orderID:   orderID,
		target:    target,
		actor:     actor,
		note:      note,
		proofCode: proofCode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c RequestTransitionCommand) Target() order.Status {
	return c.target
}

// Actor returns who requests the transition.
func (c RequestTransitionCommand) Actor() order.Actor {
	return c.actor
}

// Note returns the optional free-form note for the history entry.
func (c RequestTransitionCommand) Note() string {
	return c.note
}

// ProofCode returns the delivery code presented for the delivered edge.
func (c RequestTransitionCommand) ProofCode() string {
	return c.proofCode
}

// Validate ensures the command was created through the constructor.
func (c *RequestTransitionCommand) Validate() error {
	return c.guard.Validate(
		ErrRequestTransitionCommandIsNotConstructed,
	)
}
