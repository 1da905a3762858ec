// Package queries contains read operations in the CQRS architecture.
// Query handlers read the database directly and return lightweight response
// structs; they never load or mutate domain aggregates.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the orders visible to the calling actor.
// Visibility is decided by role: clients see orders they placed, delivery
// users see orders assigned to them, owners see orders against their
// restaurants. An optional status filter narrows the result AFTER the
// role scoping, so it can never widen what the actor may see.
//
// Example:
//
//	query, _ := NewGetOrdersQueryWithStatus(actor, order.Pending)
//	handler := NewGetOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get orders: %w", err)
//	}
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	actor     user.Actor
	status    order.Status
	hasStatus bool

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for all orders visible to the actor.
func NewGetOrdersQuery(actor user.Actor) (GetOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrdersQueryWithStatus creates a query narrowed to one status.
func NewGetOrdersQueryWithStatus(actor user.Actor, status order.Status) (GetOrdersQuery, error) {
	if err := errors.Join(actor.Validate(), status.Validate()); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		actor:     actor,
		status:    status,
		hasStatus: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the actor whose visibility scopes the result.
func (q GetOrdersQuery) Actor() user.Actor {
	return q.actor
}

// Status returns the optional status filter and whether it is set.
func (q GetOrdersQuery) Status() (order.Status, bool) {
	return q.status, q.hasStatus
}

// GetOrdersQueryResponse represents one order in a listing.
type GetOrdersQueryResponse struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Status       order.Status
	Total        kernel.Money
	CreatedAt    time.Time
}
