package observers

import (
	"sync"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/eventbus"
)

// TrackingView accumulates the delivery timeline of a single order: its
// status changes and dispatch event, oldest first. On construction it seeds
// itself from the bus history, so a view opened mid-delivery still shows the
// steps it missed.
type TrackingView struct {
	mu      sync.Mutex
	orderID string
	events  []event.Event

	unsubscribes []func()
}

// NewTrackingView creates a tracking view for the given order and subscribes
// it to the bus.
func NewTrackingView(bus *eventbus.Bus, orderID kernel.UUID) *TrackingView {
	v := &TrackingView{orderID: orderID.String()}

	// History is newest-first; replay it backwards to seed in timeline order.
	history := bus.History(event.TypeOrderStatusChanged, event.TypeAgentDispatched)
	for i := len(history) - 1; i >= 0; i-- {
		v.record(history[i])
	}

	v.unsubscribes = append(v.unsubscribes,
		bus.Subscribe(event.TypeOrderStatusChanged, v.record),
		bus.Subscribe(event.TypeAgentDispatched, v.record),
	)

	return v
}

// Events returns the order's timeline, oldest first.
func (v *TrackingView) Events() []event.Event {
	v.mu.Lock()
	defer v.mu.Unlock()

	events := make([]event.Event, len(v.events))
	copy(events, v.events)
	return events
}

// Close detaches the view from the bus.
func (v *TrackingView) Close() {
	for _, unsubscribe := range v.unsubscribes {
		unsubscribe()
	}
	v.unsubscribes = nil
}

func (v *TrackingView) record(evt event.Event) {
	orderID, ok := payloadOrderID(evt.Payload)
	if !ok || orderID != v.orderID {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, evt)
}
