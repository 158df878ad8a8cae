package commands

import (
	"context"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/ports"
)

// DispatchOrderCommandHandler performs the Processing -> InTransit transition.
// The order must already have an agent assigned; dispatching without one is an
// invalid transition, not a silent assignment.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle dispatches the order and publishes AgentDispatched alongside the
// status change.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	toDispatch, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := toDispatch.Status()
	if err = toDispatch.Dispatch(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, toDispatch); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	agentID := toDispatch.AssignedAgent()
	h.publisher.Publish(event.TypeAgentDispatched, event.AgentDispatchedPayload{
		OrderID: toDispatch.ID().String(),
		AgentID: agentID,
		Message: fmt.Sprintf("Order %s has been dispatched with drone %s", toDispatch.ID(), agentID),
	})
	h.publisher.Publish(event.TypeOrderStatusChanged, statusChanged(
		toDispatch.ID(), fromStatus, toDispatch.Status(), agentID, "",
		fmt.Sprintf("Order %s is in transit", toDispatch.ID()),
	))

	return nil
}
