package cmd

import (
	"log/slog"

	httpin "mediquick/internal/adapters/in/http"
	"mediquick/internal/adapters/out/postgres"
	"mediquick/internal/adapters/out/postgres/eventlogrepo"
	"mediquick/internal/adapters/out/postgres/inventoryrepo"
	"mediquick/internal/adapters/out/postgres/orderrepo"
	"mediquick/internal/core/application/usecases/commands"
	"mediquick/internal/core/application/usecases/queries"
	"mediquick/internal/eventbus"
	"mediquick/internal/jobs"
	"mediquick/internal/observers"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *eventbus.Bus
	logger     *slog.Logger

	dashboard     *observers.StatusDashboard
	notifications *observers.NotificationCenter
	journal       *observers.EventJournal
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	bus := eventbus.NewBus(config.EventHistoryCapacity, logger)

	return &CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:           bus,
		logger:        logger,
		dashboard:     observers.NewStatusDashboard(bus),
		notifications: observers.NewNotificationCenter(bus, config.NotificationCapacity),
		journal:       observers.NewEventJournal(bus, eventlogrepo.NewGormEventLogRepository(gormDB), logger),
	}
}

// Close detaches the observers and stops the event bus. Pending events are
// delivered before the bus shuts down.
func (c *CompositionRoot) Close() {
	c.dashboard.Close()
	c.notifications.Close()
	c.journal.Close()
	c.bus.Close()
}

func (c *CompositionRoot) EventBus() *eventbus.Bus {
	return c.bus
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateAmendOrderCommandHandler() commands.AmendOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAmendOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignAgentCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateRestockCommandHandler() commands.RestockCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestockCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderEventsQueryHandler() queries.GetOrderEventsQueryHandler {
	return queries.NewGetOrderEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockItemsQueryHandler() queries.GetLowStockItemsQueryHandler {
	return queries.NewGetLowStockItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateAmendOrderCommandHandler(),
		c.CreateApproveOrderCommandHandler(),
		c.CreateRejectOrderCommandHandler(),
		c.CreateAssignAgentCommandHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateRestockCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetOrderEventsQueryHandler(),
		c.CreateGetLowStockItemsQueryHandler(),
	)
}

// CreateJobManager wires the background jobs over non-transactional
// repositories. Jobs only read and publish, so they bypass the unit of work.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	telemetryJob := jobs.NewDroneTelemetryJob(
		orderrepo.NewGormOrderRepository(c.gormDB), c.bus, c.logger,
	)
	lowStockJob := jobs.NewLowStockReportJob(
		inventoryrepo.NewGormInventoryRepository(c.gormDB), c.bus, c.logger,
	)
	return jobs.NewJobManager(telemetryJob, lowStockJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
