// Package queries contains read-only operations serving the HTTP API.
// Query handlers bypass the domain model and read projections straight from
// the database; they never mutate state.
package queries

import (
	"errors"
	"time"

	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its line items.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order view served by the API.
type GetOrderQueryResponse struct {
	ID                   kernel.UUID
	Customer             string
	Status               string
	Total                int
	DeliveryAddress      string
	DeliveryInstructions string
	AssignedAgent        string
	RejectionReason      string
	PaymentMethod        string
	PaymentStatus        string
	CreatedAt            time.Time
	Items                []GetOrderItemResponse
}

// GetOrderItemResponse is one line item of the order view.
type GetOrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice int
	Subtotal  int
}
