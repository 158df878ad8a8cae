package commands

import (
	"context"
	"errors"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/ports"
)

// ErrAgentAlreadyAssigned is returned when the requested agent is already
// carrying another active order.
var ErrAgentAlreadyAssigned = errors.New("agent is already assigned to another active order")

// AssignAgentCommandHandler records the delivery agent for a processing order.
// An agent can serve at most one active order at a time; the uniqueness check
// runs inside the same transaction as the assignment.
type AssignAgentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignAgentCommandHandler creates a handler for agent assignment.
func NewAssignAgentCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle assigns the agent if it is free, then publishes the status change
// carrying the agent id. Reassigning the same agent to the same order is a
// no-op conflict-wise.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) error {
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

	target, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	holderID, held, err := orderRepo.ActiveOrderIDForAgent(ctx, cmd.AgentID())
	if err != nil {
		return err
	}
	if held && !holderID.IsEqual(target.ID()) {
		return ErrAgentAlreadyAssigned
	}

	fromStatus := target.Status()
	if err = target.AssignAgent(cmd.AgentID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(event.TypeOrderStatusChanged, statusChanged(
		target.ID(), fromStatus, target.Status(), cmd.AgentID(), "",
		fmt.Sprintf("Drone %s assigned to order %s", cmd.AgentID(), target.ID()),
	))

	return nil
}
