package order

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the identity behind a transition request: a role plus the ID of
// the customer, store, courier, or admin acting in that role. The lifecycle
// manager records the actor in the status history and checks it against the
// order's own party references.
//
// Actor is a value object; use NewActor.
type Actor struct {
	role Role
	id   kernel.UUID

	isConstructed bool
}

// NewActor creates a validated Actor.
// Both the role and the ID must be valid.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	if err := errors.Join(
		role.Validate(),
		id.Validate(),
	); err != nil {
		return Actor{}, err
	}

	return Actor{
		role:          role,
		id:            id,
		isConstructed: true,
	}, nil
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}
