// Package eventbus provides the process-wide publish/subscribe mechanism at
// the heart of the coordination core.
//
// Delivery is at-most-once, in-memory fan-out: a subscriber registered at
// publish time receives the event exactly once; a late joiner can catch up
// from the bounded history buffer or the durable event log. Publishing never
// blocks on subscriber handlers, and a panicking handler is isolated and
// logged without affecting other subscribers or the publisher.
package eventbus

import (
	"log/slog"
	"sync"
	"time"

	"mediquick/internal/core/domain/model/event"
)

// DefaultHistoryCapacity bounds the recent-event buffer kept for late joiners.
const DefaultHistoryCapacity = 200

// Handler consumes a published event. Handlers run on the bus dispatcher
// goroutine, serialized in publish order; slow work should be handed off.
// A handler must not publish back into the bus: the dispatcher cannot drain
// the queue while the handler runs, so a re-entrant publish can block forever
// once the queue fills.
type Handler func(evt event.Event)

type subscription struct {
	id      int
	handler Handler
}

type dispatch struct {
	evt      event.Event
	handlers []Handler
	flushed  chan struct{}
}

// Bus is the in-memory event bus. Create one with NewBus; the zero value is
// not usable. All methods are safe for concurrent use.
type Bus struct {
	logger *slog.Logger

	mu            sync.Mutex
	nextID        int
	subscriptions map[string][]subscription
	history       []event.Event
	capacity      int
	closed        bool

	// publishing counts queue senders in flight so Close can wait for them
	// before closing the queue.
	publishing sync.WaitGroup

	queue chan dispatch
	done  sync.WaitGroup
}

// NewBus creates a bus with the given history capacity (DefaultHistoryCapacity
// when non-positive) and starts its dispatcher.
func NewBus(historyCapacity int, logger *slog.Logger) *Bus {
	if historyCapacity <= 0 {
		historyCapacity = DefaultHistoryCapacity
	}

	b := &Bus{
		logger:        logger.With("component", "event_bus"),
		subscriptions: make(map[string][]subscription),
		history:       make([]event.Event, 0, historyCapacity),
		capacity:      historyCapacity,
		queue:         make(chan dispatch, 1024),
	}

	b.done.Add(1)
	go b.dispatchLoop()

	return b
}

// Subscribe registers a handler for an event type and returns an unsubscribe
// function. Multiple handlers per type are allowed; a handler added while a
// publish is in flight does not receive that publish.
func (b *Bus) Subscribe(eventType string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subscriptions[eventType]
		for i, sub := range subs {
			if sub.id == id {
				b.subscriptions[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stamps the payload into an Event, appends it to the history buffer
// (evicting the oldest past capacity), and queues it for fan-out to the
// subscribers registered at this moment. Unknown event types are accepted;
// with no subscribers the publish is just recorded.
func (b *Bus) Publish(eventType string, payload any) {
	evt := event.Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.logger.Warn("publish on closed bus dropped", "type", eventType)
		return
	}

	if len(b.history) >= b.capacity {
		copy(b.history, b.history[1:])
		b.history[len(b.history)-1] = evt
	} else {
		b.history = append(b.history, evt)
	}

	subs := b.subscriptions[eventType]
	handlers := make([]Handler, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.handler
	}
	b.publishing.Add(1)
	b.mu.Unlock()

	b.queue <- dispatch{evt: evt, handlers: handlers}
	b.publishing.Done()
}

// History returns buffered events most-recent-first, optionally filtered to
// the given event types.
func (b *Bus) History(eventTypes ...string) []event.Event {
	wanted := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		wanted[t] = true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]event.Event, 0, len(b.history))
	for i := len(b.history) - 1; i >= 0; i-- {
		if len(wanted) == 0 || wanted[b.history[i].Type] {
			out = append(out, b.history[i])
		}
	}
	return out
}

// Flush blocks until every event queued before the call has been delivered.
// Used by tests and during shutdown.
func (b *Bus) Flush() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.publishing.Add(1)
	b.mu.Unlock()

	flushed := make(chan struct{})
	b.queue <- dispatch{flushed: flushed}
	b.publishing.Done()

	<-flushed
}

// Close drains the queue and stops the dispatcher. Publishes after Close are
// dropped with a warning.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	// Wait for in-flight queue sends; new publishes see closed and drop.
	b.publishing.Wait()
	close(b.queue)
	b.done.Wait()
}

func (b *Bus) dispatchLoop() {
	defer b.done.Done()

	for d := range b.queue {
		if d.flushed != nil {
			close(d.flushed)
			continue
		}
		for _, handler := range d.handlers {
			b.invoke(handler, d.evt)
		}
	}
}

// invoke runs one handler with panic isolation so a failing subscriber cannot
// prevent delivery to the rest.
func (b *Bus) invoke(handler Handler, evt event.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "type", evt.Type, "panic", r)
		}
	}()

	handler(evt)
}
