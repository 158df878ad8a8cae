package services

import (
	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/pkg/errs"
)

// StockReservationService reserves and releases inventory for whole orders.
//
// ReserveAll is the critical correctness point of order approval: either every
// line item's stock is available and all records are decremented, or no record
// is touched and the failing product is reported. A partially reserved order
// must never exist.
//
// The service operates on records the caller has already loaded (and locked)
// for the products involved; it performs no I/O itself.
type StockReservationService struct{}

// NewStockReservationService creates a StockReservationService.
func NewStockReservationService() StockReservationService {
	return StockReservationService{}
}

// ReserveAll decrements stock for every line item, all-or-nothing.
//
// Every item's availability is verified before any record is mutated, so an
// InsufficientStockError (for the first product that cannot be covered) leaves
// all records at their prior levels. A missing record for a referenced product
// is an ObjectNotFoundError.
func (s StockReservationService) ReserveAll(records []*inventory.Record, items []order.Item) error {
	byProduct, err := s.index(records)
	if err != nil {
		return err
	}

	// Quantities are summed per product so duplicate lines for the same
	// product are checked against their combined demand.
	needed, orderOfProducts := requiredQuantities(items)

	// Validation pass: nothing is decremented until every product is covered.
	for _, productID := range orderOfProducts {
		record, ok := byProduct[productID]
		if !ok {
			return errs.NewObjectNotFoundError("product", productID.String())
		}
		if needed[productID] > record.CurrentStock() {
			return inventory.NewInsufficientStockError(
				record.ProductID(), needed[productID], record.CurrentStock(),
			)
		}
	}

	for _, productID := range orderOfProducts {
		if err := byProduct[productID].Reserve(needed[productID]); err != nil {
			return err
		}
	}

	return nil
}

// requiredQuantities sums item quantities per product, preserving first-seen
// product order for deterministic failure reporting.
func requiredQuantities(items []order.Item) (map[kernel.UUID]int, []kernel.UUID) {
	needed := make(map[kernel.UUID]int, len(items))
	productOrder := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		if _, seen := needed[item.ProductID()]; !seen {
			productOrder = append(productOrder, item.ProductID())
		}
		needed[item.ProductID()] += item.Quantity()
	}
	return needed, productOrder
}

// ReleaseAll returns every line item's quantity to stock, undoing a prior
// ReserveAll for the same items.
func (s StockReservationService) ReleaseAll(records []*inventory.Record, items []order.Item) error {
	byProduct, err := s.index(records)
	if err != nil {
		return err
	}

	for _, item := range items {
		record, ok := byProduct[item.ProductID()]
		if !ok {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		if err := record.Release(item.Quantity()); err != nil {
			return err
		}
	}

	return nil
}

func (s StockReservationService) index(records []*inventory.Record) (map[kernel.UUID]*inventory.Record, error) {
	byProduct := make(map[kernel.UUID]*inventory.Record, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, err
		}
		byProduct[record.ProductID()] = record
	}
	return byProduct, nil
}
