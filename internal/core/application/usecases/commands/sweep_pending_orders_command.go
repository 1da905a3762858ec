package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/guard"
)

var (
	ErrSweepPendingOrdersCommandIsNotConstructed = errors.New(
		"SweepPendingOrdersCommand must be created via NewSweepPendingOrdersCommand constructor",
	)

	ErrMaxAgeIsRequired = errors.New("max age must be positive")
)

// SweepPendingOrdersCommand requests a re-announcement of orders that have
// sat in Pending longer than MaxAge. Owners whose notification stream was
// disconnected when the order arrived get the event again on the next sweep.
type SweepPendingOrdersCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewSweepPendingOrdersCommand creates a sweep command for orders pending
// longer than maxAge.
func NewSweepPendingOrdersCommand(maxAge time.Duration) (SweepPendingOrdersCommand, error) {
	if maxAge <= 0 {
		return SweepPendingOrdersCommand{}, ErrMaxAgeIsRequired
	}

	return SweepPendingOrdersCommand{
		maxAge: maxAge,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepPendingOrdersCommandIsNotConstructed)
}

// MaxAge returns how long an order must have been pending to be swept.
func (c SweepPendingOrdersCommand) MaxAge() time.Duration {
	return c.maxAge
}
