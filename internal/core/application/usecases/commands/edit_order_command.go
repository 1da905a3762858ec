package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand represents a request to set an order's status.
// Whether the actor may drive this particular transition is the access
// policy's decision at handle time; the command only validates the shape.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	actor     user.Actor
	orderID   kernel.UUID
	newStatus order.Status

	guard guard.ConstructorGuard
}

// NewEditOrderCommand creates a command to change an order's status.
func NewEditOrderCommand(actor user.Actor, orderID kernel.UUID, newStatus order.Status) (EditOrderCommand, error) {
	editCommand := EditOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		editCommand.setActor(actor),
		editCommand.setOrderID(orderID),
		editCommand.setNewStatus(newStatus),
	); err != nil {
		return EditOrderCommand{}, err
	}

	return editCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

// Actor returns the actor requesting the transition.
func (c EditOrderCommand) Actor() user.Actor {
	return c.actor
}

// OrderID returns the target order's identifier.
func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested target status.
func (c EditOrderCommand) NewStatus() order.Status {
	return c.newStatus
}

func (c *EditOrderCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *EditOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}
