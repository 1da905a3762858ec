package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery_Valid(t *testing.T) {
	actor, err := user.NewActor(kernel.NewUUID(), user.Client)
	require.NoError(t, err)

	query, err := queries.NewGetOrdersQuery(actor)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, hasStatus := query.Status()
	assert.False(t, hasStatus)
}

func TestNewGetOrdersQueryWithStatus_Valid(t *testing.T) {
	actor, err := user.NewActor(kernel.NewUUID(), user.Owner)
	require.NoError(t, err)

	query, err := queries.NewGetOrdersQueryWithStatus(actor, order.Pending)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	status, hasStatus := query.Status()
	assert.True(t, hasStatus)
	assert.Equal(t, order.Pending, status)
}

func TestNewGetOrdersQueryWithStatus_InvalidStatus(t *testing.T) {
	actor, err := user.NewActor(kernel.NewUUID(), user.Owner)
	require.NoError(t, err)

	_, err = queries.NewGetOrdersQueryWithStatus(actor, order.UnknownStatus)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery_Valid(t *testing.T) {
	actor, err := user.NewActor(kernel.NewUUID(), user.Client)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(actor, orderID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	actor, err := user.NewActor(kernel.NewUUID(), user.Client)
	require.NoError(t, err)

	_, err = queries.NewGetOrderQuery(actor, kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
