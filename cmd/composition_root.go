package cmd

import (
	"log/slog"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/application/usecases/subscriptions"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pubsub"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. The event bus is one
// broker instance created here and shared by publishers (command handlers,
// the sweep job) and subscribers (websocket streams); events exist only
// within this process.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	eventBus   *pubsub.Broker[ports.OrderEvent]
	policy     services.AccessPolicy
	logger     *slog.Logger
}

func NewCompositionRoot(gormDB *gorm.DB, eventBufferSize int, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		eventBus:   pubsub.NewBrokerWithBuffer[ports.OrderEvent](eventBufferSize),
		policy:     services.NewAccessPolicy(),
		logger:     logger,
	}
}

// Close releases resources owned by the root, closing all event streams.
func (c *CompositionRoot) Close() {
	c.eventBus.Close()
}

func (c *CompositionRoot) uowFactoryForCommands() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactoryForCommands(), c.eventBus)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	return commands.NewEditOrderCommandHandler(c.uowFactoryForCommands(), c.policy, c.eventBus)
}

func (c *CompositionRoot) CreateTakeOrderCommandHandler() commands.TakeOrderCommandHandler {
	return commands.NewTakeOrderCommandHandler(c.uowFactoryForCommands(), c.eventBus)
}

func (c *CompositionRoot) CreateSweepPendingOrdersCommandHandler() commands.SweepPendingOrdersCommandHandler {
	return commands.NewSweepPendingOrdersCommandHandler(c.uowFactoryForCommands(), c.eventBus)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateOrderSubscriptions() subscriptions.OrderSubscriptions {
	return subscriptions.NewOrderSubscriptions(c.eventBus, c.policy)
}

func (c *CompositionRoot) CreateJobManager(pendingMaxAge time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepPendingOrdersCommandHandler(), pendingMaxAge, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateEditOrderCommandHandler(),
		c.CreateTakeOrderCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateOrderSubscriptions(),
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
