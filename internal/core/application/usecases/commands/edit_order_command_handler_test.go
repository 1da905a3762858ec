package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEditOrderRepository struct{ mock.Mock }

func (m *MockEditOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockEditOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockEditOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockEditOrderRepository) Claim(ctx context.Context, id, driverID kernel.UUID) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}

func (m *MockEditOrderRepository) GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockEditRestaurantRepository struct{ mock.Mock }

func (m *MockEditRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

func (m *MockEditRestaurantRepository) GetDish(ctx context.Context, id kernel.UUID) (*restaurant.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Dish), args.Error(1)
}

func (m *MockEditRestaurantRepository) GetOwnerID(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockEditUoW struct{ mock.Mock }

func (m *MockEditUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEditUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEditUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEditUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockEditUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockEditUoWFactory struct{ mock.Mock }

func (m *MockEditUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEditPublisher struct{ mock.Mock }

func (m *MockEditPublisher) Publish(topic string, event ports.OrderEvent) {
	m.Called(topic, event)
}

// editOrderFixture holds a restored order plus every party that can act on it.
type editOrderFixture struct {
	order    *order.Order
	ownerID  kernel.UUID
	customer user.Actor
	owner    user.Actor
	driver   user.Actor
}

func newEditOrderFixture(t *testing.T, status order.Status, withDriver bool) editOrderFixture {
	t.Helper()

	customer, err := user.NewActor(kernel.NewUUID(), user.Client)
	require.NoError(t, err)
	owner, err := user.NewActor(kernel.NewUUID(), user.Owner)
	require.NoError(t, err)
	driver, err := user.NewActor(kernel.NewUUID(), user.Delivery)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.NoError(t, err)

	var driverID *kernel.UUID
	if withDriver {
		id := driver.ID()
		driverID = &id
	}

	total, err := kernel.NewMoney(4200)
	require.NoError(t, err)

	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), customer.ID(), kernel.NewUUID(),
		driverID, status, total, []order.Item{item}, time.Now().UTC(),
	)
	require.NoError(t, err)

	return editOrderFixture{
		order:    testOrder,
		ownerID:  owner.ID(),
		customer: customer,
		owner:    owner,
		driver:   driver,
	}
}

func newEditUoW(t *testing.T, ctx context.Context, fixture editOrderFixture) (*MockEditUoW, *MockEditOrderRepository, *MockEditUoWFactory) {
	t.Helper()

	orderRepo := new(MockEditOrderRepository)
	restaurantRepo := new(MockEditRestaurantRepository)
	uow := new(MockEditUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("Get", ctx, fixture.order.ID()).Return(fixture.order, nil).Once(),
		restaurantRepo.On("GetOwnerID", ctx, fixture.order.RestaurantID()).Return(fixture.ownerID, nil).Once(),
	)

	factory := new(MockEditUoWFactory)
	factory.On("Create").Return(uow).Once()

	return uow, orderRepo, factory
}

func TestEditOrderCommandHandler_Handle_OwnerStartsCooking(t *testing.T) {
	ctx := t.Context()
	fixture := newEditOrderFixture(t, order.Pending, false)

	uow, orderRepo, factory := newEditUoW(t, ctx, fixture)
	orderRepo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.Cooking
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher := new(MockEditPublisher)
	publisher.On("Publish", ports.TopicOrderUpdated, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.OrderID.IsEqual(fixture.order.ID()) && e.Status == order.Cooking
	})).Once()

	cmd, err := commands.NewEditOrderCommand(fixture.owner, fixture.order.ID(), order.Cooking)
	require.NoError(t, err)

	handler := commands.NewEditOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestEditOrderCommandHandler_Handle_OwnerCookedPublishesBothTopics(t *testing.T) {
	ctx := t.Context()
	fixture := newEditOrderFixture(t, order.Cooking, false)

	uow, orderRepo, factory := newEditUoW(t, ctx, fixture)
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher := new(MockEditPublisher)
	mock.InOrder(
		publisher.On("Publish", ports.TopicCookedOrder, mock.MatchedBy(func(e ports.OrderEvent) bool {
			return e.Status == order.Cooked && e.OwnerID.IsEqual(fixture.ownerID)
		})).Once(),
		publisher.On("Publish", ports.TopicOrderUpdated, mock.AnythingOfType("ports.OrderEvent")).Once(),
	)

	cmd, err := commands.NewEditOrderCommand(fixture.owner, fixture.order.ID(), order.Cooked)
	require.NoError(t, err)

	handler := commands.NewEditOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestEditOrderCommandHandler_Handle_DriverDelivers(t *testing.T) {
	ctx := t.Context()
	fixture := newEditOrderFixture(t, order.PickedUp, true)

	uow, orderRepo, factory := newEditUoW(t, ctx, fixture)
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher := new(MockEditPublisher)
	publisher.On("Publish", ports.TopicOrderUpdated, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Status == order.Delivered
	})).Once()

	cmd, err := commands.NewEditOrderCommand(fixture.driver, fixture.order.ID(), order.Delivered)
	require.NoError(t, err)

	handler := commands.NewEditOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestEditOrderCommandHandler_Handle_CustomerCanNotEdit(t *testing.T) {
	ctx := t.Context()
	fixture := newEditOrderFixture(t, order.Pending, false)

	uow, orderRepo, factory := newEditUoW(t, ctx, fixture)
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher := new(MockEditPublisher)

	cmd, err := commands.NewEditOrderCommand(fixture.customer, fixture.order.ID(), order.Delivered)
	require.NoError(t, err)

	handler := commands.NewEditOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)

	var forbidden *errs.AccessForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "You can not edit that", forbidden.Message)
	orderRepo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestEditOrderCommandHandler_Handle_StrangerCanNotSee(t *testing.T) {
	ctx := t.Context()
	fixture := newEditOrderFixture(t, order.Pending, false)

	stranger, err := user.NewActor(kernel.NewUUID(), user.Owner) // owner of some other restaurant
	require.NoError(t, err)

	uow, orderRepo, factory := newEditUoW(t, ctx, fixture)
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher := new(MockEditPublisher)

	cmd, err := commands.NewEditOrderCommand(stranger, fixture.order.ID(), order.Cooking)
	require.NoError(t, err)

	handler := commands.NewEditOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)

	var forbidden *errs.AccessForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "You can not see that", forbidden.Message)
	orderRepo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestEditOrderCommandHandler_Handle_DriverCanNotCook(t *testing.T) {
	ctx := t.Context()
	fixture := newEditOrderFixture(t, order.Pending, true)

	uow, orderRepo, factory := newEditUoW(t, ctx, fixture)
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher := new(MockEditPublisher)

	cmd, err := commands.NewEditOrderCommand(fixture.driver, fixture.order.ID(), order.Cooking)
	require.NoError(t, err)

	handler := commands.NewEditOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)

	var forbidden *errs.AccessForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "You can not edit that", forbidden.Message)
	orderRepo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestEditOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	owner, err := user.NewActor(kernel.NewUUID(), user.Owner)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	orderRepo := new(MockEditOrderRepository)
	restaurantRepo := new(MockEditRestaurantRepository)
	uow := new(MockEditUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEditUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEditPublisher)

	cmd, err := commands.NewEditOrderCommand(owner, orderID, order.Cooking)
	require.NoError(t, err)

	handler := commands.NewEditOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	publisher.AssertNotCalled(t, "Publish")
}
