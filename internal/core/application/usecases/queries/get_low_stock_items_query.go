package queries

import (
	"errors"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/guard"
)

var ErrGetLowStockItemsQueryIsNotConstructed = errors.New(
	"GetLowStockItemsQuery must be created via NewGetLowStockItemsQuery constructor",
)

// GetLowStockItemsQuery retrieves products at or below their reorder
// threshold. Backs the pharmacy's restocking report.
type GetLowStockItemsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetLowStockItemsQuery creates a query for products needing restock.
func NewGetLowStockItemsQuery() GetLowStockItemsQuery {
	return GetLowStockItemsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetLowStockItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockItemsQueryIsNotConstructed)
}

// GetLowStockItemsQueryResponse is one product needing restock.
type GetLowStockItemsQueryResponse struct {
	ProductID        kernel.UUID
	Name             string
	CurrentStock     int
	ReorderThreshold int
}
