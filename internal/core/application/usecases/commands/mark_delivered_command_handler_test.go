package commands_test

import (
	"testing"

	"mediquick/internal/core/application/usecases/commands"
	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkDeliveredCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	inTransit := newInTransitOrder(t, "DRN-42X", mustItem(t, kernel.NewUUID(), "Insulin Pen", 1, 4999))
	cmd, err := commands.NewMarkDeliveredCommand(inTransit.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, inTransit.ID()).Return(inTransit, nil).Once(),
		orderRepo.On("Update", ctx, inTransit).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewMarkDeliveredCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, inTransit.Status())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeOrderStatusChanged, events[0].Type)

	payload := events[0].Payload.(event.OrderStatusChangedPayload)
	assert.Equal(t, "InTransit", payload.FromStatus)
	assert.Equal(t, "Delivered", payload.ToStatus)
	assert.Equal(t, "DRN-42X", payload.AgentID)
}

func TestMarkDeliveredCommandHandler_Handle_NotInTransit(t *testing.T) {
	ctx := t.Context()

	processing := newProcessingOrder(t, "DRN-42X", mustItem(t, kernel.NewUUID(), "Insulin Pen", 1, 4999))
	cmd, err := commands.NewMarkDeliveredCommand(processing.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, processing.ID()).Return(processing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewMarkDeliveredCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	uow.AssertNotCalled(t, "Commit", ctx)
	assert.Empty(t, publisher.Events())
}
