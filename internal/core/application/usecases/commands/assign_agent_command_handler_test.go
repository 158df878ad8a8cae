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

func TestAssignAgentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	processing := newProcessingOrder(t, "", mustItem(t, kernel.NewUUID(), "Paracetamol 500mg", 1, 799))
	cmd, err := commands.NewAssignAgentCommand(processing.ID(), "DRN-42X")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, processing.ID()).Return(processing, nil).Once(),
		orderRepo.On("ActiveOrderIDForAgent", ctx, "DRN-42X").Return(kernel.UUID{}, false, nil).Once(),
		orderRepo.On("Update", ctx, processing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewAssignAgentCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "DRN-42X", processing.AssignedAgent())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeOrderStatusChanged, events[0].Type)
	payload := events[0].Payload.(event.OrderStatusChangedPayload)
	assert.Equal(t, "DRN-42X", payload.AgentID)
}

func TestAssignAgentCommandHandler_Handle_AgentBusy(t *testing.T) {
	ctx := t.Context()

	processing := newProcessingOrder(t, "", mustItem(t, kernel.NewUUID(), "Paracetamol 500mg", 1, 799))
	cmd, err := commands.NewAssignAgentCommand(processing.ID(), "DRN-42X")
	require.NoError(t, err)

	otherOrderID := kernel.NewUUID()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, processing.ID()).Return(processing, nil).Once(),
		orderRepo.On("ActiveOrderIDForAgent", ctx, "DRN-42X").Return(otherOrderID, true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewAssignAgentCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAgentAlreadyAssigned)
	assert.Empty(t, processing.AssignedAgent())
	uow.AssertNotCalled(t, "Commit", ctx)
	assert.Empty(t, publisher.Events())
}

func TestAssignAgentCommandHandler_Handle_ReassignSameOrder(t *testing.T) {
	ctx := t.Context()

	processing := newProcessingOrder(t, "DRN-42X", mustItem(t, kernel.NewUUID(), "Paracetamol 500mg", 1, 799))
	cmd, err := commands.NewAssignAgentCommand(processing.ID(), "DRN-42X")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, processing.ID()).Return(processing, nil).Once(),
		orderRepo.On("ActiveOrderIDForAgent", ctx, "DRN-42X").Return(processing.ID(), true, nil).Once(),
		orderRepo.On("Update", ctx, processing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewAssignAgentCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "DRN-42X", processing.AssignedAgent())
}

func TestAssignAgentCommandHandler_Handle_NotProcessing(t *testing.T) {
	ctx := t.Context()

	pending := newPendingOrder(t, mustItem(t, kernel.NewUUID(), "Paracetamol 500mg", 1, 799))
	cmd, err := commands.NewAssignAgentCommand(pending.ID(), "DRN-42X")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, pending.ID()).Return(pending, nil).Once(),
		orderRepo.On("ActiveOrderIDForAgent", ctx, "DRN-42X").Return(kernel.UUID{}, false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewAssignAgentCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	uow.AssertNotCalled(t, "Commit", ctx)
}
