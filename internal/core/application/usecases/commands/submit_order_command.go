package commands

import (
	"errors"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/pkg/errs"
	"mediquick/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand represents a checkout submission from the external
// order-submission flow. The item list carries price snapshots taken by the
// catalog at submission time; payment method and status come from the external
// payment collaborator.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	customer             string
	items                []order.Item
	deliveryAddress      string
	deliveryInstructions string
	paymentMethod        string
	paymentStatus        string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to place a new order.
// Validates the identifier, purchaser, line items, address, and payment method.
func NewSubmitOrderCommand(
	orderID kernel.UUID,
	customer string,
	items []order.Item,
	deliveryAddress string,
	deliveryInstructions string,
	paymentMethod string,
	paymentStatus string,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		deliveryInstructions: deliveryInstructions,
		paymentStatus:        paymentStatus,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setItems(items),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the purchaser's display identifier.
func (c SubmitOrderCommand) Customer() string {
	return c.customer
}

// Items returns the ordered line items.
func (c SubmitOrderCommand) Items() []order.Item {
	return c.items
}

// DeliveryAddress returns the delivery destination.
func (c SubmitOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryInstructions returns optional free-text delivery notes.
func (c SubmitOrderCommand) DeliveryInstructions() string {
	return c.deliveryInstructions
}

// PaymentMethod returns the payment method snapshot.
func (c SubmitOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// PaymentStatus returns the payment status token.
func (c SubmitOrderCommand) PaymentStatus() string {
	return c.paymentStatus
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setCustomer(customer string) error {
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	c.customer = customer
	return nil
}

func (c *SubmitOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}

func (c *SubmitOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.deliveryAddress = address
	return nil
}

func (c *SubmitOrderCommand) setPaymentMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	c.paymentMethod = method
	return nil
}
