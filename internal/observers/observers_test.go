package observers_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/eventbus"
	"mediquick/internal/observers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *eventbus.Bus {
	t.Helper()
	bus := eventbus.NewBus(100, slog.Default())
	t.Cleanup(bus.Close)
	return bus
}

func statusChanged(orderID kernel.UUID, from, to order.Status) event.OrderStatusChangedPayload {
	return event.OrderStatusChangedPayload{
		OrderID:    orderID.String(),
		FromStatus: from.String(),
		ToStatus:   to.String(),
	}
}

func TestTrackingView_AccumulatesOwnOrderOnly(t *testing.T) {
	bus := newTestBus(t)

	orderID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	view := observers.NewTrackingView(bus, orderID)
	defer view.Close()

	bus.Publish(event.TypeOrderStatusChanged, statusChanged(orderID, order.PendingApproval, order.Processing))
	bus.Publish(event.TypeOrderStatusChanged, statusChanged(otherID, order.PendingApproval, order.Processing))
	bus.Publish(event.TypeAgentDispatched, event.AgentDispatchedPayload{
		OrderID: orderID.String(),
		AgentID: "DRN-42X",
	})
	bus.Flush()

	events := view.Events()
	require.Len(t, events, 2)
	assert.Equal(t, event.TypeOrderStatusChanged, events[0].Type)
	assert.Equal(t, event.TypeAgentDispatched, events[1].Type)
}

func TestTrackingView_SeedsFromHistory(t *testing.T) {
	bus := newTestBus(t)

	orderID := kernel.NewUUID()

	// Events published before the view opens.
	bus.Publish(event.TypeOrderStatusChanged, statusChanged(orderID, order.PendingApproval, order.Processing))
	bus.Publish(event.TypeOrderStatusChanged, statusChanged(orderID, order.Processing, order.InTransit))
	bus.Flush()

	view := observers.NewTrackingView(bus, orderID)
	defer view.Close()

	events := view.Events()
	require.Len(t, events, 2)
	first := events[0].Payload.(event.OrderStatusChangedPayload)
	assert.Equal(t, "Processing", first.ToStatus)
}

func TestTrackingView_CloseStopsUpdates(t *testing.T) {
	bus := newTestBus(t)

	orderID := kernel.NewUUID()
	view := observers.NewTrackingView(bus, orderID)
	view.Close()

	bus.Publish(event.TypeOrderStatusChanged, statusChanged(orderID, order.PendingApproval, order.Processing))
	bus.Flush()

	assert.Empty(t, view.Events())
}

func TestStatusDashboard_TracksCounts(t *testing.T) {
	bus := newTestBus(t)

	dashboard := observers.NewStatusDashboard(bus)
	defer dashboard.Close()

	first := kernel.NewUUID()
	second := kernel.NewUUID()

	bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{OrderID: first.String()})
	bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{OrderID: second.String()})
	bus.Publish(event.TypeOrderStatusChanged, statusChanged(first, order.PendingApproval, order.Processing))
	bus.Flush()

	assert.Equal(t, 1, dashboard.Count(order.PendingApproval))
	assert.Equal(t, 1, dashboard.Count(order.Processing))
	assert.Equal(t, 0, dashboard.Count(order.Delivered))
}

func TestNotificationCenter_UnreadAndMarkAllRead(t *testing.T) {
	bus := newTestBus(t)

	center := observers.NewNotificationCenter(bus, 10)
	defer center.Close()

	bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{Message: "Order placed"})
	bus.Publish(event.TypeLowStockAlert, event.LowStockAlertPayload{Message: "Insulin Pen stock is low (3 remaining)"})
	bus.Publish(event.TypeAgentDispatched, event.AgentDispatchedPayload{Message: "Dispatched"})
	// StockChanged is routine and must not notify.
	bus.Publish(event.TypeStockChanged, event.StockChangedPayload{Message: "stock updated"})
	bus.Flush()

	assert.Equal(t, 3, center.UnreadCount())

	notifications := center.Notifications()
	require.Len(t, notifications, 3)
	// Newest first.
	assert.Equal(t, "Drone Dispatched", notifications[0].Title)
	assert.Equal(t, "Low Stock Alert", notifications[1].Title)
	assert.Equal(t, "New Order Received", notifications[2].Title)

	center.MarkAllRead()
	assert.Equal(t, 0, center.UnreadCount())
}

func TestNotificationCenter_CapacityBound(t *testing.T) {
	bus := newTestBus(t)

	center := observers.NewNotificationCenter(bus, 2)
	defer center.Close()

	for range 5 {
		bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{Message: "Order placed"})
	}
	bus.Flush()

	assert.Len(t, center.Notifications(), 2)
	assert.Equal(t, 2, center.UnreadCount())
}

// memoryEventLog is an in-memory ports.EventLogRepository for journal tests.
type memoryEventLog struct {
	mu     sync.Mutex
	events []event.Event
	fail   bool
}

func (m *memoryEventLog) Append(_ context.Context, evt event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("log unavailable")
	}
	m.events = append(m.events, evt)
	return nil
}

func (m *memoryEventLog) ListByOrder(_ context.Context, orderID kernel.UUID) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]event.Event, 0)
	for _, evt := range m.events {
		if id, ok := payloadOrderID(evt.Payload); ok && id == orderID.String() {
			matched = append(matched, evt)
		}
	}
	return matched, nil
}

func (m *memoryEventLog) ListRecent(_ context.Context, limit int) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recent := make([]event.Event, 0, limit)
	for i := len(m.events) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, m.events[i])
	}
	return recent, nil
}

func payloadOrderID(payload any) (string, bool) {
	switch p := payload.(type) {
	case event.OrderCreatedPayload:
		return p.OrderID, true
	case event.OrderStatusChangedPayload:
		return p.OrderID, true
	default:
		return "", false
	}
}

func (m *memoryEventLog) all() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]event.Event, len(m.events))
	copy(events, m.events)
	return events
}

func TestEventJournal_AppendsEveryEvent(t *testing.T) {
	bus := newTestBus(t)
	log := &memoryEventLog{}

	journal := observers.NewEventJournal(bus, log, slog.Default())
	defer journal.Close()

	orderID := kernel.NewUUID()
	bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{OrderID: orderID.String()})
	bus.Publish(event.TypeStockChanged, event.StockChangedPayload{ProductID: kernel.NewUUID().String()})
	bus.Flush()

	events := log.all()
	require.Len(t, events, 2)
	assert.Equal(t, event.TypeOrderCreated, events[0].Type)
	assert.Equal(t, event.TypeStockChanged, events[1].Type)
}

func TestEventJournal_SurvivesLogFailure(t *testing.T) {
	bus := newTestBus(t)
	log := &memoryEventLog{fail: true}

	journal := observers.NewEventJournal(bus, log, slog.Default())
	defer journal.Close()

	bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{})
	bus.Flush()

	// The failed write is dropped; later publishes still reach the journal.
	log.mu.Lock()
	log.fail = false
	log.mu.Unlock()

	bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{})
	bus.Flush()

	assert.Len(t, log.all(), 1)
}
