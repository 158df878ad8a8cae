// Package eventlogrepo persists the append-only journal of published events.
// The journal backs event replay for order tracking and the activity feed.
package eventlogrepo

import (
	"encoding/json"
	"time"

	"mediquick/internal/core/domain/model/event"

	"github.com/google/uuid"
)

// EventDTO is one journal row. Payloads are stored as JSONB; the order ID is
// lifted out of the payload into its own indexed column so per-order replay
// does not scan JSON.
type EventDTO struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Type      string `gorm:"index"`
	OrderID   *uuid.UUID
	Payload   []byte `gorm:"type:jsonb"`
	Timestamp time.Time
}

// TableName overrides GORM's default naming to use "event_log".
func (EventDTO) TableName() string {
	return "event_log"
}

func fromDomain(evt event.Event) (EventDTO, error) {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return EventDTO{}, err
	}

	dto := EventDTO{
		Type:      evt.Type,
		Payload:   payload,
		Timestamp: evt.Timestamp,
	}

	if orderID, ok := orderIDOf(evt.Payload); ok {
		dto.OrderID = &orderID
	}

	return dto, nil
}

func toDomain(dto EventDTO) event.Event {
	return event.Event{
		Type:      dto.Type,
		Payload:   json.RawMessage(dto.Payload),
		Timestamp: dto.Timestamp,
	}
}

// orderIDOf extracts the order reference from the payloads that carry one.
func orderIDOf(payload any) (uuid.UUID, bool) {
	var raw string
	switch p := payload.(type) {
	case event.OrderCreatedPayload:
		raw = p.OrderID
	case event.OrderStatusChangedPayload:
		raw = p.OrderID
	case event.AgentDispatchedPayload:
		raw = p.OrderID
	case event.AgentLocationUpdatedPayload:
		raw = p.OrderID
	default:
		return uuid.UUID{}, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}
