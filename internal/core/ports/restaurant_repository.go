package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the read contract for the selling side of
// the marketplace: restaurants for ownership checks, dishes (with their
// options and choices eagerly loaded) for pricing.
type RestaurantRepository interface {
	// Get retrieves a restaurant by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)

	// GetDish retrieves a dish by its unique identifier with its full
	// option/choice definition, as the pricing engine requires.
	GetDish(ctx context.Context, id kernel.UUID) (*restaurant.Dish, error)

	// GetOwnerID retrieves the owning user's id for a restaurant.
	// Used by authorization checks that need only the owner relation.
	GetOwnerID(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error)
}
