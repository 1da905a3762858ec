// Package user models the acting identities of the marketplace: customers,
// restaurant owners, and delivery drivers. The core never authenticates an
// actor; it only authorizes one supplied by the identity collaborator.
package user

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the closed set of marketplace roles. A user's role is immutable
// for the lifetime of the core's logic, so every authorization decision can
// dispatch on it as a tagged variant rather than scattered boolean checks.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// Client places orders against restaurants.
	Client

	// Owner owns one or more restaurants and fulfils their orders.
	Owner

	// Delivery claims cooked orders and delivers them.
	Delivery
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Client:      "Client",
		Owner:       "Owner",
		Delivery:    "Delivery",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Client:   "Client",
		Owner:    "Owner",
		Delivery: "Delivery",
	}
}

// Validate checks that the Role is one of Client, Owner, or Delivery.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses a role name as supplied by the identity
// collaborator. Returns an error for anything outside the closed set.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}
