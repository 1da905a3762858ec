package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders from the database, scoped to the
// calling actor's role. Owners are resolved through the restaurants
// table so ownership never has to be stored on the order row.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
// Results are sorted by creation time, newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql, args := buildOrdersListing(query)

	orders := make([]GetOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOrdersQueryResponse
		var id, restaurantID uuid.UUID
		var status string
		var totalCents int64

		err = rows.Scan(
			&id,
			&restaurantID,
			&status,
			&totalCents,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		sellerID, idErr := kernel.UUIDFromBytes(restaurantID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.RestaurantID = sellerID

		orderStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		orderResp.Status = orderStatus

		total, moneyErr := kernel.NewMoney(totalCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		orderResp.Total = total

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// buildOrdersListing composes the role-scoped SQL. The role predicate
// always binds the actor's own id; the status filter only narrows it.
func buildOrdersListing(query GetOrdersQuery) (string, []any) {
	const base = `
		SELECT
			o.id,
			o.restaurant_id,
			o.status,
			o.total_cents,
			o.created_at
		FROM orders o
	`

	var where string
	args := make([]any, 0, 2)

	switch query.Actor().Role() {
	case user.Client:
		where = "WHERE o.customer_id = ?"
	case user.Delivery:
		where = "WHERE o.driver_id = ?"
	case user.Owner:
		where = "JOIN restaurants r ON r.id = o.restaurant_id WHERE r.owner_id = ?"
	default:
		where = "WHERE FALSE"
	}
	args = append(args, query.Actor().ID().Bytes())

	sql := base + where
	if status, ok := query.Status(); ok {
		sql += " AND o.status = ?"
		args = append(args, status.String())
	}
	sql += " ORDER BY o.created_at DESC"

	return sql, args
}