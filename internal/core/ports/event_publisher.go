package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// Topics carrying order lifecycle events.
const (
	// TopicPendingOrder fires on order creation; the payload carries the
	// owning restaurant's owner id for owner-scoped delivery.
	TopicPendingOrder = "order.pending"

	// TopicCookedOrder fires when an owner transitions an order to
	// Cooked. It is a broadcast topic for delivery users.
	TopicCookedOrder = "order.cooked"

	// TopicOrderUpdated fires on every successful status transition and
	// every successful driver claim.
	TopicOrderUpdated = "order.updated"
)

// OrderEvent is the payload published on all order topics: a snapshot of
// the order's identities and state at publish time, plus the restaurant
// owner's id so subscriber predicates can evaluate the access matrix
// without a storage round trip.
type OrderEvent struct {
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	DriverID     *kernel.UUID
	RestaurantID kernel.UUID
	OwnerID      kernel.UUID
	Status       order.Status
	Total        kernel.Money
	OccurredAt   time.Time
}

// NewOrderEvent snapshots an order and its restaurant owner into an event.
func NewOrderEvent(o *order.Order, ownerID kernel.UUID) OrderEvent {
	return OrderEvent{
		OrderID:      o.ID(),
		CustomerID:   o.CustomerID(),
		DriverID:     o.DriverID(),
		RestaurantID: o.RestaurantID(),
		OwnerID:      ownerID,
		Status:       o.Status(),
		Total:        o.Total(),
		OccurredAt:   time.Now().UTC(),
	}
}

// EventPublisher is the fire-and-forget publish side of the event bus.
// Publishing never blocks on slow or absent subscribers.
type EventPublisher interface {
	Publish(topic string, event OrderEvent)
}

// EventSubscriber is the subscribe side of the event bus. The returned
// channel yields, in publish order, every event published on the topic
// after the subscription that passes the filter; it closes when ctx is
// cancelled. A nil filter passes everything.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, filter func(OrderEvent) bool) <-chan OrderEvent
}

// EventBus combines both sides of the event bus.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
