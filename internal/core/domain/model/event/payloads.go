package event

// Payload types, one per event kind. The payload shape is the contract with
// external consumers: tracking views filter by OrderID, dashboards aggregate
// per status, notification centers render Message.

// OrderCreatedPayload announces a newly submitted order awaiting approval.
type OrderCreatedPayload struct {
	OrderID  string `json:"order_id"`
	Customer string `json:"customer"`
	Total    int    `json:"total"`
	Message  string `json:"message"`
}

// OrderStatusChangedPayload accompanies every successful lifecycle transition.
type OrderStatusChangedPayload struct {
	OrderID    string `json:"order_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	AgentID    string `json:"agent_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Message    string `json:"message"`
}

// AgentDispatchedPayload announces that a delivery agent left with an order.
type AgentDispatchedPayload struct {
	OrderID string `json:"order_id"`
	AgentID string `json:"agent_id"`
	Message string `json:"message"`
}

// StockChangedPayload announces a stock level change (reservation, release,
// or restock).
type StockChangedPayload struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	Message      string `json:"message"`
}

// LowStockAlertPayload announces that a product's stock reached its reorder
// threshold.
type LowStockAlertPayload struct {
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	CurrentStock     int    `json:"current_stock"`
	ReorderThreshold int    `json:"reorder_threshold"`
	Message          string `json:"message"`
}

// AgentLocationUpdatedPayload carries simulated telemetry for in-transit
// orders. It is produced by the telemetry job, never by the core.
type AgentLocationUpdatedPayload struct {
	OrderID  string  `json:"order_id"`
	AgentID  string  `json:"agent_id"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message"`
}
