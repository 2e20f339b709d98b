package order

import (
	"time"

	"grocery/internal/core/domain/model/kernel"
)

// StatusChangedEvent is the lifecycle event emitted once per successful
// transition. The notification dispatcher consumes it to reach the affected
// parties; delivery is best-effort and never blocks or fails the transition.
type StatusChangedEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	From        Status
	To          Status
	ActorRole   Role
	ActorID     kernel.UUID
	At          time.Time
}

// RecipientRoles names the roles that should be notified about this
// transition. The customer hears about everything; the vendor and courier
// only about the edges that concern them.
func (e StatusChangedEvent) RecipientRoles() []Role {
	switch e.To {
	case Confirmed, Preparing, Delivered, Cancelled, Refunded:
		return []Role{RoleCustomer, RoleVendor}
	case Ready:
		return []Role{RoleCustomer, RoleCourier}
	case Assigned, PickedUp, OnTheWay:
		return []Role{RoleCustomer, RoleVendor, RoleCourier}
	default:
		return []Role{RoleCustomer}
	}
}
