package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The lifecycle is ordered:
//
//	Pending ──> Cooking ──> Cooked ──> PickedUp ──> Delivered
//
// Which actor may set which status is decided by the access policy, not
// here: the policy's allow-list deliberately permits skipping ahead (an
// owner may set Cooked straight from Pending) and rewriting the same
// status. Status itself only knows the closed set of valid values.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// Cooking indicates the restaurant has started preparing the order.
	Cooking

	// Cooked indicates the order is ready for pickup by a driver.
	Cooked

	// PickedUp indicates a driver has collected the order.
	PickedUp

	// Delivered indicates the order reached the customer.
	// This is the final state in the lifecycle.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Cooking:       "Cooking",
		Cooked:        "Cooked",
		PickedUp:      "PickedUp",
		Delivered:     "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Cooking:   "Cooking",
		Cooked:    "Cooked",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
	}
}

// Validate checks if the Status value is one of the five lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name, typically from a request or a
// stored row. Returns an error for anything outside the closed set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}
