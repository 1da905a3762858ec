// Package ports defines the contracts between the application core and
// infrastructure: repositories for the order and restaurant aggregates,
// the unit of work, and the event publisher.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim atomically assigns the driver to the order's empty driver
	// slot. The check runs against the latest persisted row, not a value
	// read earlier in the request, so two concurrent claims cannot both
	// succeed: the loser receives a conflict error.
	Claim(ctx context.Context, id, driverID kernel.UUID) error

	// GetAllPendingOlderThan retrieves orders still in Pending status
	// created before the cutoff, used by the pending-order sweep.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
