package order

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Role identifies the kind of actor requesting a status transition.
// The transition table authorizes every edge for specific roles only.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is the person who placed the order.
	RoleCustomer

	// RoleVendor is the store fulfilling the order.
	RoleVendor

	// RoleCourier is the delivery partner carrying the order.
	RoleCourier

	// RoleAdmin is back-office staff handling payment reversals.
	RoleAdmin
)

func getRoleNames() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleVendor:   "vendor",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
	}
}

func getValidRoleNames() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer: "customer",
		RoleVendor:   "vendor",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a wire-format role name ("customer", "vendor",
// "courier", "admin"). Returns an error for anything else.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleNames() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the defined actor roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleNames()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire-format role name.
// Implements fmt.Stringer and is safe on any Role value.
func (r Role) String() string {
	if name, ok := getRoleNames()[r]; ok {
		return name
	}
	return "unknown"
}
