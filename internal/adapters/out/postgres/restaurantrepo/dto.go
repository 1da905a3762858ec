// Package restaurantrepo provides data transfer objects and mapping functions
// for restaurant and dish persistence. Dishes carry their full option and
// choice definition as JSON, since the pricing engine always reads it whole.
package restaurantrepo

import (
	"encoding/json"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for restaurants.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`
	Name    string
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// DishDTO represents the database structure for dishes.
type DishDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	PriceCents   int64
	Options      []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for dish entities.
func (DishDTO) TableName() string {
	return "dishes"
}

// optionJSON is the stored form of one dish option.
type optionJSON struct {
	Name       string       `json:"name"`
	ExtraCents int64        `json:"extraCents,omitempty"`
	Choices    []choiceJSON `json:"choices,omitempty"`
}

type choiceJSON struct {
	Name       string `json:"name"`
	ExtraCents int64  `json:"extraCents,omitempty"`
}

func restaurantFromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:      aggregate.ID().Bytes(),
		OwnerID: aggregate.OwnerID().Bytes(),
		Name:    aggregate.Name(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.RestoreRestaurant(id, ownerID, dto.Name)
}

func dishFromDomain(aggregate *restaurant.Dish) (DishDTO, error) {
	optionJSONs := make([]optionJSON, 0, len(aggregate.Options()))
	for _, option := range aggregate.Options() {
		choiceJSONs := make([]choiceJSON, 0, len(option.Choices()))
		for _, choice := range option.Choices() {
			choiceJSONs = append(choiceJSONs, choiceJSON{
				Name:       choice.Name(),
				ExtraCents: choice.Extra().Cents(),
			})
		}

		optionJSONs = append(optionJSONs, optionJSON{
			Name:       option.Name(),
			ExtraCents: option.Extra().Cents(),
			Choices:    choiceJSONs,
		})
	}

	options, err := json.Marshal(optionJSONs)
	if err != nil {
		return DishDTO{}, err
	}

	return DishDTO{
		ID:           aggregate.ID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		Name:         aggregate.Name(),
		PriceCents:   aggregate.BasePrice().Cents(),
		Options:      options,
	}, nil
}

func dishToDomain(dto DishDTO) (*restaurant.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceCents)
	if err != nil {
		return nil, err
	}

	var optionJSONs []optionJSON
	if len(dto.Options) > 0 {
		if err = json.Unmarshal(dto.Options, &optionJSONs); err != nil {
			return nil, err
		}
	}

	options := make([]restaurant.DishOption, 0, len(optionJSONs))
	for _, optionDTO := range optionJSONs {
		option, optionErr := optionToDomain(optionDTO)
		if optionErr != nil {
			return nil, optionErr
		}
		options = append(options, option)
	}

	return restaurant.RestoreDish(id, restaurantID, dto.Name, price, options)
}

func optionToDomain(dto optionJSON) (restaurant.DishOption, error) {
	extra, err := kernel.NewMoney(dto.ExtraCents)
	if err != nil {
		return restaurant.DishOption{}, err
	}

	choices := make([]restaurant.DishOptionChoice, 0, len(dto.Choices))
	for _, choiceDTO := range dto.Choices {
		choiceExtra, choiceErr := kernel.NewMoney(choiceDTO.ExtraCents)
		if choiceErr != nil {
			return restaurant.DishOption{}, choiceErr
		}

		choice, choiceErr := restaurant.NewDishOptionChoice(choiceDTO.Name, choiceExtra)
		if choiceErr != nil {
			return restaurant.DishOption{}, choiceErr
		}
		choices = append(choices, choice)
	}

	return restaurant.NewDishOption(dto.Name, extra, choices)
}
