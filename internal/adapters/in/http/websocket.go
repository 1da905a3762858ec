package http

import (
	"context"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// StreamPendingOrders handles GET /ws/v1/orders/pending - streams newly
// placed orders to the owning restaurant's owner.
func (s *Server) StreamPendingOrders(ctx echo.Context) error {
	return s.streamEvents(ctx, func(streamCtx context.Context, actor user.Actor) (<-chan ports.OrderEvent, error) {
		return s.subscriptions.PendingOrders(streamCtx, actor)
	})
}

// StreamCookedOrders handles GET /ws/v1/orders/cooked - streams orders ready
// for pickup to delivery users.
func (s *Server) StreamCookedOrders(ctx echo.Context) error {
	return s.streamEvents(ctx, func(streamCtx context.Context, actor user.Actor) (<-chan ports.OrderEvent, error) {
		return s.subscriptions.CookedOrders(streamCtx, actor)
	})
}

// StreamOrderUpdates handles GET /ws/v1/orders/:id/updates - streams one
// order's status changes to its parties.
func (s *Server) StreamOrderUpdates(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
	}

	return s.streamEvents(ctx, func(streamCtx context.Context, actor user.Actor) (<-chan ports.OrderEvent, error) {
		return s.subscriptions.OrderUpdates(streamCtx, actor, orderID)
	})
}

// streamEvents upgrades the connection and forwards the subscription's
// events until either side goes away. The subscription's context is bound
// to the socket: closing the connection cancels it, which unsubscribes
// from the event bus.
func (s *Server) streamEvents(
	ctx echo.Context,
	subscribe func(context.Context, user.Actor) (<-chan ports.OrderEvent, error),
) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}

	streamCtx, cancel := context.WithCancel(ctx.Request().Context())
	defer cancel()

	events, err := subscribe(streamCtx, actor)
	if err != nil {
		return writeError(ctx, err, "Could not subscribe")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Read pump exists only to notice the peer going away.
	go func() {
		defer cancel()
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if writeErr := conn.WriteJSON(orderEventMessage(event)); writeErr != nil {
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if pingErr := conn.WriteMessage(websocket.PingMessage, nil); pingErr != nil {
				return nil
			}
		case <-streamCtx.Done():
			return nil
		}
	}
}
