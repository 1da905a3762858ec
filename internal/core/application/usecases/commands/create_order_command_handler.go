package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
//
// The handler prices the order from the live menu, snapshots the
// selections onto immutable order items, persists the order and its items
// atomically, and publishes the pending-order event once the transaction
// has committed. The total is fixed here and never recomputed afterwards.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateOrderCommand(actor, restaurantID, items)
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a UoWFactory for transactional persistence and an
// EventPublisher for the pending-order notification.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
//
// Only a Client actor may place orders. Every item's dish must exist and
// belong to the ordered-from restaurant; a dish from another restaurant's
// menu reads as not found. The order total is the pricing engine's sum
// over all lines.
//
// Returns the new order's id on success.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	if cmd.Actor().Role() != user.Client {
		return kernel.UUID{}, errs.NewAccessForbiddenError("You can not do that")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurantRepo := uow.RestaurantRepository()
	orderRepo := uow.OrderRepository()

	sellingRestaurant, err := restaurantRepo.Get(ctx, cmd.RestaurantID())
	if err != nil {
		return kernel.UUID{}, err
	}

	total := kernel.Zero()
	items := make([]order.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		dish, err := restaurantRepo.GetDish(ctx, input.DishID)
		if err != nil {
			return kernel.UUID{}, err
		}

		if !dish.RestaurantID().IsEqual(sellingRestaurant.ID()) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("dish", input.DishID.String())
		}

		total = total.Add(dish.Price(input.Selections))

		item, err := order.NewItem(kernel.NewUUID(), dish.ID(), input.Selections)
		if err != nil {
			return kernel.UUID{}, err
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.Actor().ID(), sellingRestaurant.ID(), total, items)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.publisher.Publish(ports.TopicPendingOrder, ports.NewOrderEvent(newOrder, sellingRestaurant.OwnerID()))

	return newOrder.ID(), nil
}
