package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Money represents a monetary amount in integer minor units (cents).
// Using integer arithmetic keeps order totals exact; the original float
// representation is deliberately not carried over.
//
// Money is an immutable value object. The zero value is a valid amount of
// zero, so no constructor guard is needed.
//
// Example:
//
//	base, _ := kernel.NewMoney(800)   // 8.00
//	extra, _ := kernel.NewMoney(200)  // 2.00
//	total := base.Add(extra)
//	fmt.Println(total)                // Output: 10.00
type Money struct {
	cents int64
}

// NewMoney creates a Money amount from minor units.
// Amounts are never negative in this domain; a negative value is rejected.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", cents))
	}
	return Money{cents: cents}, nil
}

// Zero returns a Money amount of zero.
func Zero() Money {
	return Money{}
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts. Amounts are non-negative, so the
// result is too.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount as a decimal string with two fraction digits,
// e.g. "10.00". Implements fmt.Stringer.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
