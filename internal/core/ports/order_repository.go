package ports

import (
	"context"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of the
	// current transaction. Lifecycle commands use it so that concurrent
	// transitions on the same order are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// ActiveOrderIDForAgent returns the ID of the non-terminal order currently
	// holding the given agent, or (zero, false) when the agent is free.
	ActiveOrderIDForAgent(ctx context.Context, agentID string) (kernel.UUID, bool, error)
}
