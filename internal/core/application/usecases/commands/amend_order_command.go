package commands

import (
	"errors"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/pkg/errs"
	"mediquick/internal/pkg/guard"
)

var ErrAmendOrderCommandIsNotConstructed = errors.New(
	"AmendOrderCommand must be created via NewAmendOrderCommand constructor",
)

// AmendOrderCommand edits an order before it leaves the pharmacy: replacement
// line items, a new delivery address, or both. Passing no items keeps the
// current ones; passing an empty address keeps the current delivery details.
type AmendOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	items                []order.Item
	deliveryAddress      string
	deliveryInstructions string

	guard guard.ConstructorGuard
}

// NewAmendOrderCommand creates a command amending an order. At least one
// change (items or delivery address) is required.
func NewAmendOrderCommand(
	orderID kernel.UUID,
	items []order.Item,
	deliveryAddress string,
	deliveryInstructions string,
) (AmendOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AmendOrderCommand{}, err
	}
	if len(items) == 0 && deliveryAddress == "" {
		return AmendOrderCommand{}, errs.NewValueIsRequiredError("amendment")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return AmendOrderCommand{}, err
		}
	}

	return AmendOrderCommand{
		orderID:              orderID,
		items:                items,
		deliveryAddress:      deliveryAddress,
		deliveryInstructions: deliveryInstructions,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AmendOrderCommand) Validate() error {
	return c.guard.Validate(ErrAmendOrderCommandIsNotConstructed)
}

// OrderID returns the order to amend.
func (c AmendOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the replacement line items, or nil to keep the current ones.
func (c AmendOrderCommand) Items() []order.Item {
	return c.items
}

// DeliveryAddress returns the new address, or empty to keep delivery as is.
func (c AmendOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryInstructions returns the instructions accompanying a new address.
func (c AmendOrderCommand) DeliveryInstructions() string {
	return c.deliveryInstructions
}

// UpdatesDelivery reports whether the command changes the delivery details.
func (c AmendOrderCommand) UpdatesDelivery() bool {
	return c.deliveryAddress != ""
}
