// Package subscriptions exposes the live order event streams offered to
// connected users. Each subscription wraps an event bus topic with the
// predicate deciding which events the subscriber may see; filtering happens
// before an event is surfaced, so a consumer never observes an event it was
// not allowed to receive.
package subscriptions

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// OrderSubscriptions creates filtered event streams for order topics.
type OrderSubscriptions struct {
	subscriber ports.EventSubscriber
	policy     services.AccessPolicy
}

// NewOrderSubscriptions creates the subscription service on top of an
// event subscriber.
func NewOrderSubscriptions(subscriber ports.EventSubscriber, policy services.AccessPolicy) OrderSubscriptions {
	return OrderSubscriptions{
		subscriber: subscriber,
		policy:     policy,
	}
}

// PendingOrders streams newly placed orders to the restaurant owner.
// Only events for restaurants the actor owns pass the filter; owners of
// other restaurants subscribed to the same topic receive nothing.
// The stream closes when ctx is cancelled.
func (s OrderSubscriptions) PendingOrders(ctx context.Context, actor user.Actor) (<-chan ports.OrderEvent, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	if actor.Role() != user.Owner {
		return nil, errs.NewAccessForbiddenError("You can not do that")
	}

	ownerID := actor.ID()
	return s.subscriber.Subscribe(ctx, ports.TopicPendingOrder, func(event ports.OrderEvent) bool {
		return event.OwnerID.IsEqual(ownerID)
	}), nil
}

// CookedOrders streams orders that just became ready for pickup.
// It is a broadcast to all delivery users: any of them may claim any
// cooked order, so no per-subscriber narrowing applies.
func (s OrderSubscriptions) CookedOrders(ctx context.Context, actor user.Actor) (<-chan ports.OrderEvent, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	if actor.Role() != user.Delivery {
		return nil, errs.NewAccessForbiddenError("You can not do that")
	}

	return s.subscriber.Subscribe(ctx, ports.TopicCookedOrder, nil), nil
}

// OrderUpdates streams status changes of one order to its parties.
// The filter checks both the order identity and the actor's relation to
// the event's parties, so a subscriber to the wrong order id, or one who
// loses their relation to the order, sees nothing.
func (s OrderSubscriptions) OrderUpdates(
	ctx context.Context,
	actor user.Actor,
	orderID kernel.UUID,
) (<-chan ports.OrderEvent, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	policy := s.policy
	return s.subscriber.Subscribe(ctx, ports.TopicOrderUpdated, func(event ports.OrderEvent) bool {
		if !event.OrderID.IsEqual(orderID) {
			return false
		}

		parties := services.OrderParties{
			CustomerID: event.CustomerID,
			DriverID:   event.DriverID,
			OwnerID:    event.OwnerID,
		}
		return policy.CanAccess(actor, parties)
	}), nil
}
