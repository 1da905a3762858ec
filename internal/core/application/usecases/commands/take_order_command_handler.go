package commands

import (
	"context"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// TakeOrderCommandHandler assigns the calling delivery person to an order.
//
// Assignment must be first-wins under concurrent claims, so the handler
// delegates the actual write to OrderRepository.Claim, which only succeeds
// when the driver column is still empty. The pre-read of the order exists
// to give a not-found error its own shape and to short-circuit the common
// already-taken case; the repository remains the arbiter of the race.
type TakeOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewTakeOrderCommandHandler creates a handler for delivery claims.
func NewTakeOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim command.
func (h *TakeOrderCommandHandler) Handle(ctx context.Context, cmd TakeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Actor().Role() != user.Delivery {
		return errs.NewAccessForbiddenError("You can not do that")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	restaurantRepo := uow.RestaurantRepository()

	target, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if target.DriverID() != nil {
		return errs.NewConflictError("This order already has a driver")
	}

	if err = orderRepo.Claim(ctx, cmd.OrderID(), cmd.Actor().ID()); err != nil {
		return err
	}

	if err = target.AssignDriver(cmd.Actor().ID()); err != nil {
		return err
	}

	ownerID, err := restaurantRepo.GetOwnerID(ctx, target.RestaurantID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ports.TopicOrderUpdated, ports.NewOrderEvent(target, ownerID))

	return nil
}
