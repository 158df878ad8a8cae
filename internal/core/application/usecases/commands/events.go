package commands

import (
	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
)

// statusChanged builds the OrderStatusChanged payload every successful
// transition publishes. fromStatus must be captured before the transition.
func statusChanged(
	orderID kernel.UUID,
	fromStatus, toStatus order.Status,
	agentID, reason, message string,
) event.OrderStatusChangedPayload {
	return event.OrderStatusChangedPayload{
		OrderID:    orderID.String(),
		FromStatus: fromStatus.String(),
		ToStatus:   toStatus.String(),
		AgentID:    agentID,
		Reason:     reason,
		Message:    message,
	}
}

// stockChanged builds the StockChanged payload for a record's new level.
func stockChanged(productID kernel.UUID, name string, currentStock int, message string) event.StockChangedPayload {
	return event.StockChangedPayload{
		ProductID:    productID.String(),
		ProductName:  name,
		CurrentStock: currentStock,
		Message:      message,
	}
}
