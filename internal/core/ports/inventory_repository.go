package ports

import (
	"context"

	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for stock records.
type InventoryRepository interface {
	// Add persists a new stock record.
	Add(ctx context.Context, record *inventory.Record) error

	// Update persists changes to an existing stock record.
	Update(ctx context.Context, record *inventory.Record) error

	// Get retrieves the stock record for a product.
	Get(ctx context.Context, productID kernel.UUID) (*inventory.Record, error)

	// GetForUpdate retrieves the records for the given products and locks their
	// rows for the duration of the current transaction. Rows are locked in
	// ascending product-ID order so competing reservations cannot deadlock.
	GetForUpdate(ctx context.Context, productIDs []kernel.UUID) ([]*inventory.Record, error)

	// GetAll retrieves every stock record.
	GetAll(ctx context.Context) ([]*inventory.Record, error)

	// GetAllLowStock retrieves records at or below their reorder threshold.
	GetAllLowStock(ctx context.Context) ([]*inventory.Record, error)
}
