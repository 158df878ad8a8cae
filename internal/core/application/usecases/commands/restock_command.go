package commands

import (
	"errors"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/errs"
	"mediquick/internal/pkg/guard"
)

var ErrRestockCommandIsNotConstructed = errors.New(
	"RestockCommand must be created via NewRestockCommand constructor",
)

// maxRestockQuantity bounds a single restock delivery.
const maxRestockQuantity = 1_000_000

// RestockCommand credits received supply to a product's stock record.
type RestockCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewRestockCommand creates a command to restock a product.
// Quantity must be positive.
func NewRestockCommand(productID kernel.UUID, quantity int) (RestockCommand, error) {
	if err := productID.Validate(); err != nil {
		return RestockCommand{}, err
	}
	if quantity < 1 || quantity > maxRestockQuantity {
		return RestockCommand{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxRestockQuantity)
	}

	return RestockCommand{
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RestockCommand) Validate() error {
	return c.guard.Validate(ErrRestockCommandIsNotConstructed)
}

// ProductID returns the product to restock.
func (c RestockCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of units received.
func (c RestockCommand) Quantity() int {
	return c.quantity
}
