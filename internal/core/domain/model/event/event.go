// Package event defines the event model shared by the in-process bus, the
// append-only event log, and all subscribers. Producers and consumers agree on
// event types by convention; an unrecognized type with no subscribers is a
// no-op, not an error.
package event

import "time"

// Event types published by the core. The bus accepts arbitrary type strings;
// these constants are the conventional vocabulary.
const (
	TypeOrderCreated         = "OrderCreated"
	TypeOrderStatusChanged   = "OrderStatusChanged"
	TypeAgentDispatched      = "AgentDispatched"
	TypeStockChanged         = "StockChanged"
	TypeLowStockAlert        = "LowStockAlert"
	TypeAgentLocationUpdated = "AgentLocationUpdated"
)

// Event is a single published occurrence. The timestamp is assigned at publish
// time; events are immutable once published.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}
