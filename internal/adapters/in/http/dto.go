// Package http is the inbound REST adapter. Handlers translate requests into
// commands and queries and map domain errors onto HTTP status codes.
package http

import (
	"encoding/json"
	"time"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SubmitOrderRequest is the checkout submission body.
type SubmitOrderRequest struct {
	Customer             string             `json:"customer"`
	Items                []OrderItemRequest `json:"items"`
	DeliveryAddress      string             `json:"deliveryAddress"`
	DeliveryInstructions string             `json:"deliveryInstructions"`
	PaymentMethod        string             `json:"paymentMethod"`
	PaymentStatus        string             `json:"paymentStatus"`
}

// OrderItemRequest is one submitted line item with its price snapshot.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
}

// SubmitOrderResponse returns the identifier assigned to the new order.
type SubmitOrderResponse struct {
	ID string `json:"id"`
}

// AmendOrderRequest carries pre-dispatch edits. Omitted fields keep the
// order's current values.
type AmendOrderRequest struct {
	Items                []OrderItemRequest `json:"items,omitempty"`
	DeliveryAddress      string             `json:"deliveryAddress,omitempty"`
	DeliveryInstructions string             `json:"deliveryInstructions,omitempty"`
}

// RejectOrderRequest carries the mandatory rejection reason.
type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

// AssignAgentRequest carries the delivery unit identifier.
type AssignAgentRequest struct {
	AgentID string `json:"agentId"`
}

// CancelOrderRequest carries the optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// RestockRequest carries the received quantity.
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// OrderResponse is the full order view.
type OrderResponse struct {
	ID                   string              `json:"id"`
	Customer             string              `json:"customer"`
	Status               string              `json:"status"`
	Total                int                 `json:"total"`
	DeliveryAddress      string              `json:"deliveryAddress"`
	DeliveryInstructions string              `json:"deliveryInstructions,omitempty"`
	AssignedAgent        string              `json:"assignedAgent,omitempty"`
	RejectionReason      string              `json:"rejectionReason,omitempty"`
	PaymentMethod        string              `json:"paymentMethod"`
	PaymentStatus        string              `json:"paymentStatus"`
	CreatedAt            time.Time           `json:"createdAt"`
	Items                []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one line item of the order view.
type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
	Subtotal  int    `json:"subtotal"`
}

// OrderSummaryResponse is one row of a status-filtered order list.
type OrderSummaryResponse struct {
	ID            string    `json:"id"`
	Customer      string    `json:"customer"`
	Status        string    `json:"status"`
	Total         int       `json:"total"`
	AssignedAgent string    `json:"assignedAgent,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderEventResponse is one entry of an order's event timeline.
type OrderEventResponse struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// LowStockItemResponse is one product needing restock.
type LowStockItemResponse struct {
	ProductID        string `json:"productId"`
	Name             string `json:"name"`
	CurrentStock     int    `json:"currentStock"`
	ReorderThreshold int    `json:"reorderThreshold"`
}
