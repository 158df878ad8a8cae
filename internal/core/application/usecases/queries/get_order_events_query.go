package queries

import (
	"encoding/json"
	"errors"
	"time"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/guard"
)

var ErrGetOrderEventsQueryIsNotConstructed = errors.New(
	"GetOrderEventsQuery must be created via NewGetOrderEventsQuery constructor",
)

// GetOrderEventsQuery retrieves the logged events of one order, oldest first.
// Backs the customer-facing tracking timeline.
type GetOrderEventsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderEventsQuery creates a query for the given order's event history.
func NewGetOrderEventsQuery(orderID kernel.UUID) (GetOrderEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderEventsQuery{}, err
	}

	return GetOrderEventsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEventsQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetOrderEventsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderEventsQueryResponse is one logged event of the order.
type GetOrderEventsQueryResponse struct {
	Type      string
	Payload   json.RawMessage
	Timestamp time.Time
}
