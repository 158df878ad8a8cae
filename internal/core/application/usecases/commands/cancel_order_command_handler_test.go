package commands_test

import (
	"testing"

	"mediquick/internal/core/application/usecases/commands"
	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_PendingOrder(t *testing.T) {
	ctx := t.Context()

	pending := newPendingOrder(t, mustItem(t, kernel.NewUUID(), "Paracetamol 500mg", 2, 799))
	cmd, err := commands.NewCancelOrderCommand(pending.ID(), "changed my mind")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, pending.ID()).Return(pending, nil).Once(),
		orderRepo.On("Update", ctx, pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, pending.Status())

	// No stock was reserved yet, so the ledger is never touched.
	uow.AssertNotCalled(t, "InventoryRepository")

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeOrderStatusChanged, events[0].Type)
	payload := events[0].Payload.(event.OrderStatusChangedPayload)
	assert.Equal(t, "changed my mind", payload.Reason)
}

func TestCancelOrderCommandHandler_Handle_ProcessingOrderReleasesStock(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	processing := newProcessingOrder(t, "DRN-42X", mustItem(t, productID, "Insulin Pen", 3, 4999))
	cmd, err := commands.NewCancelOrderCommand(processing.ID(), "")
	require.NoError(t, err)

	// Stock as it looks after the earlier reservation of 3 units.
	record := mustRecord(t, productID, "Insulin Pen", 7, 5)

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, processing.ID()).Return(processing, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetForUpdate", ctx, mock.AnythingOfType("[]kernel.UUID")).
			Return([]*inventory.Record{record}, nil).
			Once(),
		inventoryRepo.On("Update", ctx, record).Return(nil).Once(),
		orderRepo.On("Update", ctx, processing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, processing.Status())
	assert.Empty(t, processing.AssignedAgent())
	assert.Equal(t, 10, record.CurrentStock())

	events := publisher.Events()
	require.Len(t, events, 2)
	assert.Equal(t, event.TypeOrderStatusChanged, events[0].Type)
	assert.Equal(t, event.TypeStockChanged, events[1].Type)

	stock := events[1].Payload.(event.StockChangedPayload)
	assert.Equal(t, productID.String(), stock.ProductID)
	assert.Equal(t, 10, stock.CurrentStock)
}

func TestCancelOrderCommandHandler_Handle_InTransitOrder(t *testing.T) {
	ctx := t.Context()

	inTransit := newInTransitOrder(t, "DRN-42X", mustItem(t, kernel.NewUUID(), "Insulin Pen", 1, 4999))
	cmd, err := commands.NewCancelOrderCommand(inTransit.ID(), "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, inTransit.ID()).Return(inTransit, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.InTransit, inTransit.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
	assert.Empty(t, publisher.Events())
}
