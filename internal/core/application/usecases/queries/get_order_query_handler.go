package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its items.
//
// The order row is joined with its restaurant so the owner relation is
// available for the access check without a second round trip. The check
// itself is the domain access policy: an actor unrelated to the order
// gets a forbidden error, not an empty result, matching how the write
// side reports the same situation.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy}
}

// Handle executes the query.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id, customerID, restaurantID, ownerID uuid.UUID
	var driverID uuid.NullUUID
	var status string
	var totalCents int64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.restaurant_id,
			o.driver_id,
			r.owner_id,
			o.status,
			o.total_cents,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&customerID,
		&restaurantID,
		&driverID,
		&ownerID,
		&status,
		&totalCents,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if driverID.Valid {
		driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.DriverID = &driver
	}

	restaurantOwnerID, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Status, err = order.StatusFromString(status); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Total, err = kernel.NewMoney(totalCents); err != nil {
		return GetOrderQueryResponse{}, err
	}

	parties := services.OrderParties{
		CustomerID: resp.CustomerID,
		DriverID:   resp.DriverID,
		OwnerID:    restaurantOwnerID,
	}
	if !h.policy.CanAccess(query.Actor(), parties) {
		return GetOrderQueryResponse{}, errs.NewAccessForbiddenError("You can not see that")
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderQueryItemResponse, error) {
	items := make([]GetOrderQueryItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			dish_id,
			selections
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderQueryItemResponse
		var id, dishID uuid.UUID
		var selectionsJSON []byte

		if err = rows.Scan(&id, &dishID, &selectionsJSON); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.DishID, err = kernel.UUIDFromBytes(dishID[:]); err != nil {
			return nil, err
		}

		if len(selectionsJSON) > 0 {
			var selections []restaurant.Selection
			if err = json.Unmarshal(selectionsJSON, &selections); err != nil {
				return nil, err
			}
			item.Selections = selections
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
