package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem factory method.
	ErrOrderItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is one priced line of an order: a dish reference plus the
// customer's option selections, snapshotted at order time. Items are
// immutable once created and are never re-derived from the live dish.
type Item struct {
	id         kernel.UUID
	dishID     kernel.UUID
	selections []restaurant.Selection

	isConstructed bool
}

// NewItem creates an order item for a dish with the given selections.
func NewItem(id, dishID kernel.UUID, selections []restaurant.Selection) (Item, error) {
	item := Item{isConstructed: true}

	if err := item.setID(id); err != nil {
		return Item{}, err
	}
	if err := dishID.Validate(); err != nil {
		return Item{}, errs.NewValueIsRequiredErrorWithCause("dishID", err)
	}

	item.dishID = dishID
	item.selections = selections
	return item, nil
}

// RestoreItem reconstructs an Item from persistence.
func RestoreItem(id, dishID kernel.UUID, selections []restaurant.Selection) (Item, error) {
	return NewItem(id, dishID, selections)
}

// Validate ensures the Item was constructed via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrOrderItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// DishID returns the referenced dish's identifier.
func (i Item) DishID() kernel.UUID {
	return i.dishID
}

// Selections returns the snapshotted option selections for this line.
func (i Item) Selections() []restaurant.Selection {
	return i.selections
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

// Order represents a customer's order against one restaurant. It is the
// aggregate root that manages the order lifecycle from creation through
// driver assignment to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, customer, and restaurant
//   - Total is computed at creation and never recomputed afterwards
//   - The driver slot is set exactly once and never reassigned
//   - Status only takes values from the closed lifecycle set; which actor
//     may set which value is the access policy's decision
//   - Items are created together with the order and are immutable
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	driverID     *kernel.UUID
	status       Status
	total        kernel.Money
	items        []Item
	createdAt    time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with the given priced
// total and items. The total is the pricing engine's sum over the same
// items; this constructor stores it verbatim and never recomputes it.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), dish.ID(), selections)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, total, []order.Item{item})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, customerID, restaurantID kernel.UUID, total kernel.Money, items []Item) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.total = total
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its
// status, optional driver, and creation time.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	total kernel.Money,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerID, restaurantID, total, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err = driverID.Validate(); err != nil {
			return nil, err
		}
		o.driverID = driverID
	}

	o.status = status
	o.createdAt = createdAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the selling restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// DriverID returns the assigned driver's identifier.
// Returns nil if no driver has claimed the order yet.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the order's priced total, fixed at creation.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Items returns the order's immutable item lines.
func (o *Order) Items() []Item {
	return o.items
}

// CreatedAt returns the order's creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ChangeStatus sets the order's status to any valid lifecycle value.
//
// No adjacency is enforced here: the access policy's allow-list is the
// only transition gate, and it intentionally lets an owner set Cooked
// straight from Pending and accepts same-status rewrites.
func (o *Order) ChangeStatus(newStatus Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignDriver claims the order for a driver.
//
// The driver slot is first-to-claim: it must be empty, and once set it is
// fixed for the order's lifetime. A second claim fails with a conflict
// carrying the user-facing "This order already has a driver" message.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil {
		return errs.NewConflictError("This order already has a driver")
	}

	o.driverID = &driverID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantID", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = items
	return nil
}
