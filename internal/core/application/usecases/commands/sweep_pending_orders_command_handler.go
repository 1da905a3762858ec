package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// SweepPendingOrdersCommandHandler re-publishes the pending-order event for
// orders that have waited in Pending past the command's age threshold.
//
// The in-process event bus does not retain events for absent subscribers,
// so an owner who was offline when an order arrived would otherwise never
// hear about it. The sweep is idempotent: an order republished twice is
// the same notification twice, not a second order.
type SweepPendingOrdersCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewSweepPendingOrdersCommandHandler creates a handler for pending sweeps.
func NewSweepPendingOrdersCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) SweepPendingOrdersCommandHandler {
	return SweepPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the sweep and returns how many orders were re-announced.
func (h *SweepPendingOrdersCommandHandler) Handle(ctx context.Context, cmd SweepPendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	restaurantRepo := uow.RestaurantRepository()

	cutoff := time.Now().UTC().Add(-cmd.MaxAge())
	stale, err := orderRepo.GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	// Stale orders cluster by restaurant, so cache owner lookups.
	owners := make(map[kernel.UUID]kernel.UUID)
	events := make([]ports.OrderEvent, 0, len(stale))
	for _, staleOrder := range stale {
		ownerID, ok := owners[staleOrder.RestaurantID()]
		if !ok {
			ownerID, err = restaurantRepo.GetOwnerID(ctx, staleOrder.RestaurantID())
			if err != nil {
				return 0, err
			}
			owners[staleOrder.RestaurantID()] = ownerID
		}

		events = append(events, ports.NewOrderEvent(staleOrder, ownerID))
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, event := range events {
		h.publisher.Publish(ports.TopicPendingOrder, event)
	}

	return len(events), nil
}
