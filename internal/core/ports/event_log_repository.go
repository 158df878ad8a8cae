package ports

import (
	"context"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/kernel"
)

// EventLogRepository is the append-only durable log of published events.
// It enables replay for subscribers that connect after the fact.
type EventLogRepository interface {
	// Append persists an event. Events are immutable once appended.
	Append(ctx context.Context, evt event.Event) error

	// ListByOrder returns the logged events referencing the given order,
	// oldest first, so a tracking view can replay the order's history.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]event.Event, error)

	// ListRecent returns up to limit most recently appended events,
	// newest first.
	ListRecent(ctx context.Context, limit int) ([]event.Event, error)
}
