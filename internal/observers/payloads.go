// Package observers contains the in-process consumers of the event bus:
// per-order tracking, a status dashboard, user notifications, and the durable
// event journal. Each observer subscribes on construction and detaches on
// Close.
package observers

import (
	"mediquick/internal/core/domain/model/event"
)

// payloadOrderID extracts the order reference from payloads that carry one.
func payloadOrderID(payload any) (string, bool) {
	switch p := payload.(type) {
	case event.OrderCreatedPayload:
		return p.OrderID, true
	case event.OrderStatusChangedPayload:
		return p.OrderID, true
	case event.AgentDispatchedPayload:
		return p.OrderID, true
	case event.AgentLocationUpdatedPayload:
		return p.OrderID, true
	default:
		return "", false
	}
}

// payloadMessage extracts the human-readable message every payload carries.
func payloadMessage(payload any) string {
	switch p := payload.(type) {
	case event.OrderCreatedPayload:
		return p.Message
	case event.OrderStatusChangedPayload:
		return p.Message
	case event.AgentDispatchedPayload:
		return p.Message
	case event.StockChangedPayload:
		return p.Message
	case event.LowStockAlertPayload:
		return p.Message
	case event.AgentLocationUpdatedPayload:
		return p.Message
	default:
		return ""
	}
}
