package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// EditOrderCommandHandler handles status transitions on orders.
//
// Access and transition permission are both evaluated against the access
// policy using a just-fetched record: first the actor's relation to the
// order (customer, assigned driver, or restaurant owner), then the
// (role, target status) allow-list. Failing the first check reads as
// "You can not see that", failing the second as "You can not edit that",
// mirroring how the denial surfaces to users.
//
// On success the handler publishes an order-updated event, preceded by an
// order-cooked event when an owner set Cooked. Events go out only after
// the transaction committed.
type EditOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewEditOrderCommandHandler creates a handler for order status edits.
func NewEditOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the status transition command.
func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
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

	ownerID, err := restaurantRepo.GetOwnerID(ctx, target.RestaurantID())
	if err != nil {
		return err
	}

	if !h.policy.CanAccess(cmd.Actor(), services.PartiesOf(target, ownerID)) {
		return errs.NewAccessForbiddenError("You can not see that")
	}

	if !h.policy.CanTransition(cmd.Actor(), cmd.NewStatus()) {
		return errs.NewAccessForbiddenError("You can not edit that")
	}

	if err = target.ChangeStatus(cmd.NewStatus()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.NewOrderEvent(target, ownerID)
	if cmd.Actor().Role() == user.Owner && cmd.NewStatus() == order.Cooked {
		h.publisher.Publish(ports.TopicCookedOrder, event)
	}
	h.publisher.Publish(ports.TopicOrderUpdated, event)

	return nil
}
