package restaurant

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrDishIsNotConstructed is returned when a Dish instance was not created
// through the NewDish or RestoreDish factory methods.
var ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")

// Selection is a customer's choice for one dish option, referenced by name.
// Choice is empty when the option itself carries a flat extra.
//
// Selections are snapshotted onto order items at order time; they are never
// re-derived from the live dish if the menu later changes.
type Selection struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}

// DishOptionChoice is one of the mutually exclusive choices an option
// offers, optionally carrying an extra charge. A zero extra adds nothing.
type DishOptionChoice struct {
	name  string
	extra kernel.Money
}

// NewDishOptionChoice creates a choice with an optional extra charge.
func NewDishOptionChoice(name string, extra kernel.Money) (DishOptionChoice, error) {
	if name == "" {
		return DishOptionChoice{}, errs.NewValueIsRequiredError("choice name")
	}
	return DishOptionChoice{name: name, extra: extra}, nil
}

// Name returns the choice's name, unique within its option.
func (c DishOptionChoice) Name() string {
	return c.name
}

// Extra returns the choice's extra charge.
func (c DishOptionChoice) Extra() kernel.Money {
	return c.extra
}

// DishOption is a named customization of a dish. An option either carries a
// flat extra itself or offers choices; when a flat extra is present it wins
// and the choices are not consulted.
type DishOption struct {
	name    string
	extra   kernel.Money
	choices []DishOptionChoice
}

// NewDishOption creates an option with an optional flat extra and an
// ordered choice list. Choice names must be unique within the option.
func NewDishOption(name string, extra kernel.Money, choices []DishOptionChoice) (DishOption, error) {
	if name == "" {
		return DishOption{}, errs.NewValueIsRequiredError("option name")
	}

	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		if _, ok := seen[choice.name]; ok {
			return DishOption{}, errs.NewValueIsInvalidErrorWithCause("option choices",
				fmt.Errorf("duplicate choice name %q", choice.name))
		}
		seen[choice.name] = struct{}{}
	}

	return DishOption{name: name, extra: extra, choices: choices}, nil
}

// Name returns the option's name, unique within its dish.
func (o DishOption) Name() string {
	return o.name
}

// Extra returns the option's flat extra charge. Zero means the option
// offers choices instead.
func (o DishOption) Extra() kernel.Money {
	return o.extra
}

// Choices returns the option's ordered choice list.
func (o DishOption) Choices() []DishOptionChoice {
	return o.choices
}

func (o DishOption) findChoice(name string) (DishOptionChoice, bool) {
	for _, choice := range o.choices {
		if choice.name == name {
			return choice, true
		}
	}
	return DishOptionChoice{}, false
}

// Dish is a menu entry of exactly one restaurant: a base price plus an
// ordered list of options. Dish prices its own selections, which keeps the
// pricing algorithm a pure function of the dish definition.
//
// Dish follows these invariants:
//   - Must have a valid unique identifier and restaurant
//   - Option names are unique within the dish
//   - Pricing is additive-only: unknown option or choice names contribute
//     zero, never an error
type Dish struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	price        kernel.Money
	options      []DishOption

	isConstructed bool
}

// NewDish creates a Dish with validation.
//
// Example:
//
//	size, _ := restaurant.NewDishOption("size", kernel.Zero(), choices)
//	dish, err := restaurant.NewDish(kernel.NewUUID(), restaurantID, "Pasta", price, []restaurant.DishOption{size})
//	if err != nil {
//	    // Handle validation error
//	}
func NewDish(id, restaurantID kernel.UUID, name string, price kernel.Money, options []DishOption) (*Dish, error) {
	dish := &Dish{isConstructed: true}

	if err := errors.Join(
		dish.setID(id),
		dish.setRestaurantID(restaurantID),
		dish.setName(name),
		dish.setOptions(options),
	); err != nil {
		return nil, err
	}

	dish.price = price
	return dish, nil
}

// RestoreDish reconstructs a Dish from persistence. The same validation as
// NewDish applies, so stored rows that violate invariants surface as errors.
func RestoreDish(id, restaurantID kernel.UUID, name string, price kernel.Money, options []DishOption) (*Dish, error) {
	return NewDish(id, restaurantID, name, price, options)
}

// Validate ensures the Dish instance was properly constructed.
func (d *Dish) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDishIsNotConstructed
	}
	return nil
}

// ID returns the dish's unique identifier.
func (d *Dish) ID() kernel.UUID {
	return d.id
}

// RestaurantID returns the owning restaurant's identifier.
func (d *Dish) RestaurantID() kernel.UUID {
	return d.restaurantID
}

// Name returns the dish's display name.
func (d *Dish) Name() string {
	return d.name
}

// BasePrice returns the dish's price before any option extras.
func (d *Dish) BasePrice() kernel.Money {
	return d.price
}

// Options returns the dish's ordered option list.
func (d *Dish) Options() []DishOption {
	return d.options
}

// Price computes the line price for this dish under the given selections.
//
// The model is additive-only, starting from the base price:
//   - a selection naming an unknown option contributes nothing
//   - an option with a flat extra adds that extra; its choices are not
//     consulted
//   - otherwise the named choice's extra is added, if the choice exists
//   - nothing ever subtracts
//
// Example:
//
//	// dish 8.00, option "size" with choice "L" extra 2.00
//	total := dish.Price([]restaurant.Selection{{Name: "size", Choice: "L"}})
//	fmt.Println(total) // Output: 10.00
func (d *Dish) Price(selections []Selection) kernel.Money {
	total := d.price

	for _, selection := range selections {
		option, ok := d.findOption(selection.Name)
		if !ok {
			continue
		}

		if option.extra.Cents() > 0 {
			total = total.Add(option.extra)
			continue
		}

		if choice, ok := option.findChoice(selection.Choice); ok {
			total = total.Add(choice.extra)
		}
	}

	return total
}

func (d *Dish) findOption(name string) (DishOption, bool) {
	for _, option := range d.options {
		if option.name == name {
			return option, true
		}
	}
	return DishOption{}, false
}

func (d *Dish) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Dish) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantID", err)
	}
	d.restaurantID = id
	return nil
}

func (d *Dish) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("dish name")
	}
	d.name = name
	return nil
}

func (d *Dish) setOptions(options []DishOption) error {
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		if _, ok := seen[option.name]; ok {
			return errs.NewValueIsInvalidErrorWithCause("dish options",
				fmt.Errorf("duplicate option name %q", option.name))
		}
		seen[option.name] = struct{}{}
	}
	d.options = options
	return nil
}
