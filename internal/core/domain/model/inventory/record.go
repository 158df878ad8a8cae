// Package inventory contains the stock ledger's per-product record entity.
// A record is the single source of truth for a product's available stock and
// rejects, rather than clamps, any operation that would drive it negative.
package inventory

import (
	"errors"
	"fmt"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record was not created through
// NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// ErrInsufficientStock is the sentinel wrapped by every InsufficientStockError.
// Use errors.Is(err, ErrInsufficientStock) to classify failed reservations.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports a reservation that would oversell a product.
// No stock is mutated when it is returned.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError for a product.
func NewInsufficientStockError(productID kernel.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: product %s, requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Record tracks the stock level of a single product.
//
// Invariants:
//   - currentStock >= 0 always; Reserve rejects rather than clamps
//   - reorderThreshold >= 0
type Record struct {
	productID        kernel.UUID
	name             string
	currentStock     int
	reorderThreshold int

	isConstructed bool
}

// NewRecord creates a stock record for a product.
func NewRecord(productID kernel.UUID, name string, currentStock, reorderThreshold int) (*Record, error) {
	r := &Record{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setProductID(productID),
		r.setName(name),
		r.setCurrentStock(currentStock),
		r.setReorderThreshold(reorderThreshold),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRecord reconstructs a record from persistence.
func RestoreRecord(productID kernel.UUID, name string, currentStock, reorderThreshold int) (*Record, error) {
	return NewRecord(productID, name, currentStock, reorderThreshold)
}

// Validate ensures the Record was created through NewRecord or RestoreRecord.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ProductID returns the product identifier.
func (r *Record) ProductID() kernel.UUID {
	return r.productID
}

// Name returns the product display name.
func (r *Record) Name() string {
	return r.name
}

// CurrentStock returns the units currently available.
func (r *Record) CurrentStock() int {
	return r.currentStock
}

// ReorderThreshold returns the stock level at or below which the product
// needs restocking.
func (r *Record) ReorderThreshold() int {
	return r.reorderThreshold
}

// LowStock reports whether the current stock is at or below the reorder threshold.
func (r *Record) LowStock() bool {
	return r.currentStock <= r.reorderThreshold
}

// Reserve atomically checks and decrements available stock. If quantity exceeds
// the current stock it returns InsufficientStockError and mutates nothing.
func (r *Record) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > r.currentStock {
		return NewInsufficientStockError(r.productID, quantity, r.currentStock)
	}

	r.currentStock -= quantity
	return nil
}

// Release returns units to stock. Used on cancellation of a reserved order and
// on restock from the supply chain; it always succeeds for positive quantities.
func (r *Record) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	r.currentStock += quantity
	return nil
}

func (r *Record) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	r.productID = productID
	return nil
}

func (r *Record) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	r.name = name
	return nil
}

func (r *Record) setCurrentStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"current stock is invalid",
			fmt.Errorf("%d is negative", stock),
		)
	}
	r.currentStock = stock
	return nil
}

func (r *Record) setReorderThreshold(threshold int) error {
	if threshold < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"reorder threshold is invalid",
			fmt.Errorf("%d is negative", threshold),
		)
	}
	r.reorderThreshold = threshold
	return nil
}
