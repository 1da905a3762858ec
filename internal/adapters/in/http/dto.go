package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// CreateOrderRequest is the request body for placing an order.
type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurantId"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	DishID     string                 `json:"dishId"`
	Selections []restaurant.Selection `json:"selections,omitempty"`
}

// CreateOrderResponse returns the new order's id.
type CreateOrderResponse struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"orderId"`
}

// EditOrderRequest is the request body for a status transition.
type EditOrderRequest struct {
	Status string `json:"status"`
}

// OKResponse is the envelope for successful requests without a payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// OrderSummary is one order in a listing.
type OrderSummary struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"totalCents"`
	Total        string    `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OrdersResponse is the envelope for order listings.
type OrdersResponse struct {
	OK     bool           `json:"ok"`
	Orders []OrderSummary `json:"orders"`
}

// OrderItemDetail is one line of a detailed order.
type OrderItemDetail struct {
	ID         string                 `json:"id"`
	DishID     string                 `json:"dishId"`
	Selections []restaurant.Selection `json:"selections,omitempty"`
}

// OrderDetail is the full representation of one order.
type OrderDetail struct {
	ID           string            `json:"id"`
	CustomerID   string            `json:"customerId"`
	RestaurantID string            `json:"restaurantId"`
	DriverID     *string           `json:"driverId,omitempty"`
	Status       string            `json:"status"`
	TotalCents   int64             `json:"totalCents"`
	Total        string            `json:"total"`
	Items        []OrderItemDetail `json:"items"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// OrderResponse is the envelope for a single order.
type OrderResponse struct {
	OK    bool        `json:"ok"`
	Order OrderDetail `json:"order"`
}

// OrderEventMessage is the wire form of an order event on a websocket stream.
type OrderEventMessage struct {
	OrderID      string    `json:"orderId"`
	CustomerID   string    `json:"customerId"`
	DriverID     *string   `json:"driverId,omitempty"`
	RestaurantID string    `json:"restaurantId"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"totalCents"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func orderSummaryFromQuery(resp queries.GetOrdersQueryResponse) OrderSummary {
	return OrderSummary{
		ID:           resp.ID.String(),
		RestaurantID: resp.RestaurantID.String(),
		Status:       resp.Status.String(),
		TotalCents:   resp.Total.Cents(),
		Total:        resp.Total.String(),
		CreatedAt:    resp.CreatedAt,
	}
}

func orderDetailFromQuery(resp queries.GetOrderQueryResponse) OrderDetail {
	var driverID *string
	if resp.DriverID != nil {
		id := resp.DriverID.String()
		driverID = &id
	}

	items := make([]OrderItemDetail, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, OrderItemDetail{
			ID:         item.ID.String(),
			DishID:     item.DishID.String(),
			Selections: item.Selections,
		})
	}

	return OrderDetail{
		ID:           resp.ID.String(),
		CustomerID:   resp.CustomerID.String(),
		RestaurantID: resp.RestaurantID.String(),
		DriverID:     driverID,
		Status:       resp.Status.String(),
		TotalCents:   resp.Total.Cents(),
		Total:        resp.Total.String(),
		Items:        items,
		CreatedAt:    resp.CreatedAt,
	}
}

func orderEventMessage(event ports.OrderEvent) OrderEventMessage {
	var driverID *string
	if event.DriverID != nil {
		id := event.DriverID.String()
		driverID = &id
	}

	return OrderEventMessage{
		OrderID:      event.OrderID.String(),
		CustomerID:   event.CustomerID.String(),
		DriverID:     driverID,
		RestaurantID: event.RestaurantID.String(),
		Status:       event.Status.String(),
		TotalCents:   event.Total.Cents(),
		OccurredAt:   event.OccurredAt,
	}
}

// notFoundMessages translates the missing object's name into the user-facing
// phrasing each endpoint uses.
var notFoundMessages = map[string]string{
	"restaurant": "Restaurant not found",
	"dish":       "Dish not found",
	"order":      "Order not found",
}

// writeError maps domain errors onto HTTP statuses and user-facing messages.
// Typed errors carry their message; anything unrecognized gets the
// endpoint's fallback so internals never leak to clients.
func writeError(ctx echo.Context, err error, fallback string) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		message, ok := notFoundMessages[notFound.ParamName]
		if !ok {
			message = fallback
		}
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: message})
	}

	var forbidden *errs.AccessForbiddenError
	if errors.As(err, &forbidden) {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{Error: forbidden.Message})
	}

	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		return ctx.JSON(http.StatusConflict, ErrorResponse{Error: conflict.Message})
	}

	if errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsRequired) {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: fallback})
	}

	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}
