package commands

import (
	"errors"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/errs"
	"mediquick/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand assigns a delivery unit (a drone identifier such as
// "DRN-42X") to a processing order.
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID string

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a command to assign an agent to an order.
func NewAssignAgentCommand(orderID kernel.UUID, agentID string) (AssignAgentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignAgentCommand{}, err
	}
	if agentID == "" {
		return AssignAgentCommand{}, errs.NewValueIsRequiredError("agent id")
	}

	return AssignAgentCommand{
		orderID: orderID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// OrderID returns the order to assign the agent to.
func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the delivery unit identifier.
func (c AssignAgentCommand) AgentID() string {
	return c.agentID
}
