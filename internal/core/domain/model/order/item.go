package order

import (
	"fmt"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/errs"
)

// Item is a line item of an order: a product reference, a quantity, and the
// unit price snapshotted at order time in minor currency units. Prices are
// copied, not referenced, so catalog changes never retroactively alter a
// placed order.
//
// Item is an immutable value object; construct it with NewItem.
type Item struct {
	productID kernel.UUID
	name      string
	quantity  int
	unitPrice int
}

// NewItem creates a validated line item.
// Quantity must be positive and the unit price non-negative.
func NewItem(productID kernel.UUID, name string, quantity, unitPrice int) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%d is negative", unitPrice),
		)
	}

	return Item{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product display name snapshotted at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price snapshot in minor currency units.
func (i Item) UnitPrice() int {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() int {
	return i.quantity * i.unitPrice
}

// Validate reports whether the item was constructed via NewItem.
// A zero-value item has no product ID and fails validation.
func (i Item) Validate() error {
	return i.productID.Validate()
}
