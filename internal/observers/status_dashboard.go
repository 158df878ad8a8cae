package observers

import (
	"sync"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/eventbus"
)

// StatusDashboard maintains live per-status order counts for the operations
// view. Counts move when orders are created and when they transition.
type StatusDashboard struct {
	mu     sync.Mutex
	counts map[string]int

	unsubscribes []func()
}

// NewStatusDashboard creates a dashboard and subscribes it to the bus.
// Counts start at zero; the dashboard tracks activity from subscription on.
func NewStatusDashboard(bus *eventbus.Bus) *StatusDashboard {
	d := &StatusDashboard{counts: make(map[string]int)}

	d.unsubscribes = append(d.unsubscribes,
		bus.Subscribe(event.TypeOrderCreated, d.onCreated),
		bus.Subscribe(event.TypeOrderStatusChanged, d.onStatusChanged),
	)

	return d
}

// Count returns the number of tracked orders currently in the given status.
func (d *StatusDashboard) Count(status order.Status) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[status.String()]
}

// Counts returns a copy of the per-status counts.
func (d *StatusDashboard) Counts() map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()

	counts := make(map[string]int, len(d.counts))
	for status, count := range d.counts {
		counts[status] = count
	}
	return counts
}

// Close detaches the dashboard from the bus.
func (d *StatusDashboard) Close() {
	for _, unsubscribe := range d.unsubscribes {
		unsubscribe()
	}
	d.unsubscribes = nil
}

func (d *StatusDashboard) onCreated(_ event.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts[order.PendingApproval.String()]++
}

func (d *StatusDashboard) onStatusChanged(evt event.Event) {
	payload, ok := evt.Payload.(event.OrderStatusChangedPayload)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.counts[payload.FromStatus] > 0 {
		d.counts[payload.FromStatus]--
	}
	d.counts[payload.ToStatus]++
}
