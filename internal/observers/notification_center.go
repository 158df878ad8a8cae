package observers

import (
	"sync"
	"time"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/eventbus"
)

// Titles shown for the event types that surface as user notifications.
const (
	titleOrderReceived   = "New Order Received"
	titleLowStock        = "Low Stock Alert"
	titleDroneDispatched = "Drone Dispatched"
)

// Notification is one entry in the notification feed.
type Notification struct {
	Title     string
	Message   string
	Timestamp time.Time
	Read      bool
}

// NotificationCenter keeps a bounded, newest-first feed of noteworthy events
// together with an unread counter.
type NotificationCenter struct {
	mu            sync.Mutex
	notifications []Notification
	capacity      int

	unsubscribes []func()
}

// NewNotificationCenter creates a notification center holding at most
// capacity entries and subscribes it to the bus.
func NewNotificationCenter(bus *eventbus.Bus, capacity int) *NotificationCenter {
	if capacity < 1 {
		capacity = 1
	}

	c := &NotificationCenter{capacity: capacity}

	c.unsubscribes = append(c.unsubscribes,
		bus.Subscribe(event.TypeOrderCreated, c.notify(titleOrderReceived)),
		bus.Subscribe(event.TypeLowStockAlert, c.notify(titleLowStock)),
		bus.Subscribe(event.TypeAgentDispatched, c.notify(titleDroneDispatched)),
	)

	return c
}

// Notifications returns the feed, newest first.
func (c *NotificationCenter) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	notifications := make([]Notification, len(c.notifications))
	copy(notifications, c.notifications)
	return notifications
}

// UnreadCount returns the number of notifications not yet marked read.
func (c *NotificationCenter) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	unread := 0
	for _, n := range c.notifications {
		if !n.Read {
			unread++
		}
	}
	return unread
}

// MarkAllRead marks every notification as read.
func (c *NotificationCenter) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.notifications {
		c.notifications[i].Read = true
	}
}

// Close detaches the notification center from the bus.
func (c *NotificationCenter) Close() {
	for _, unsubscribe := range c.unsubscribes {
		unsubscribe()
	}
	c.unsubscribes = nil
}

func (c *NotificationCenter) notify(title string) eventbus.Handler {
	return func(evt event.Event) {
		c.mu.Lock()
		defer c.mu.Unlock()

		entry := Notification{
			Title:     title,
			Message:   payloadMessage(evt.Payload),
			Timestamp: evt.Timestamp,
		}

		c.notifications = append([]Notification{entry}, c.notifications...)
		if len(c.notifications) > c.capacity {
			c.notifications = c.notifications[:c.capacity]
		}
	}
}
