// Package http exposes the order service over HTTP: a small JSON API for
// placing and managing orders, and websocket endpoints streaming live order
// events to connected users.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/application/usecases/subscriptions"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	editOrderHandler   commands.EditOrderCommandHandler
	takeOrderHandler   commands.TakeOrderCommandHandler

	// Query handlers
	getOrdersHandler queries.GetOrdersQueryHandler
	getOrderHandler  queries.GetOrderQueryHandler

	// Live event streams
	subscriptions subscriptions.OrderSubscriptions
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	editOrderHandler commands.EditOrderCommandHandler,
	takeOrderHandler commands.TakeOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	orderSubscriptions subscriptions.OrderSubscriptions,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		editOrderHandler:   editOrderHandler,
		takeOrderHandler:   takeOrderHandler,
		getOrdersHandler:   getOrdersHandler,
		getOrderHandler:    getOrderHandler,
		subscriptions:      orderSubscriptions,
	}
}

// RegisterRoutes attaches all API and websocket routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.EditOrder)
	api.POST("/orders/:id/take", s.TakeOrder)

	ws := e.Group("/ws/v1")
	ws.GET("/orders/pending", s.StreamPendingOrders)
	ws.GET("/orders/cooked", s.StreamCookedOrders)
	ws.GET("/orders/:id/updates", s.StreamOrderUpdates)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid restaurant id"})
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		dishID, dishErr := kernel.UUIDFromString(item.DishID)
		if dishErr != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid dish id"})
		}

		items = append(items, commands.ItemInput{
			DishID:     dishID,
			Selections: item.Selections,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(actor, restaurantID, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order data"})
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, "Could not create order")
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OK: true, OrderID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - lists the actor's visible orders.
// An optional ?status= parameter narrows the listing.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}

	var query queries.GetOrdersQuery
	if statusParam := ctx.QueryParam("status"); statusParam != "" {
		status, statusErr := order.StatusFromString(statusParam)
		if statusErr != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status"})
		}
		query, err = queries.NewGetOrdersQueryWithStatus(actor, status)
	} else {
		query, err = queries.NewGetOrdersQuery(actor)
	}
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Could not load orders")
	}

	response := make([]OrderSummary, 0, len(orders))
	for _, resp := range orders {
		response = append(response, orderSummaryFromQuery(resp))
	}

	return ctx.JSON(http.StatusOK, OrdersResponse{OK: true, Orders: response})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order in detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, "Could not load order")
	}

	return ctx.JSON(http.StatusOK, OrderResponse{OK: true, Order: orderDetailFromQuery(resp)})
}

// EditOrder handles PUT /api/v1/orders/:id/status - transitions an order.
func (s *Server) EditOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
	}

	var req EditOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status"})
	}

	cmd, err := commands.NewEditOrderCommand(actor, orderID, newStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	}

	if err = s.editOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Could not edit order")
	}

	return ctx.JSON(http.StatusOK, OKResponse{OK: true})
}

// TakeOrder handles POST /api/v1/orders/:id/take - claims an order for delivery.
func (s *Server) TakeOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
	}

	cmd, err := commands.NewTakeOrderCommand(actor, orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	}

	if err = s.takeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, "Could not update the order")
	}

	return ctx.JSON(http.StatusOK, OKResponse{OK: true})
}
