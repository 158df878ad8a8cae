package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetOrderEventsQueryHandler reads the event history of one order.
type GetOrderEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEventsQueryHandler creates a handler for order history reads.
func NewGetOrderEventsQueryHandler(db *gorm.DB) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{db: db}
}

// Handle returns the order's logged events in append order.
func (h GetOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEventsQuery,
) ([]GetOrderEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			type,
			payload,
			timestamp
		FROM event_log
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]GetOrderEventsQueryResponse, 0)
	for rows.Next() {
		var resp GetOrderEventsQueryResponse
		var payload []byte
		var timestamp time.Time

		if err = rows.Scan(&resp.Type, &payload, &timestamp); err != nil {
			return nil, err
		}

		resp.Payload = payload
		resp.Timestamp = timestamp
		events = append(events, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
