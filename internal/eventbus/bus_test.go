package eventbus_test

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus(capacity int) *eventbus.Bus {
	return eventbus.NewBus(capacity, slog.Default())
}

func TestBus_PublishAndSubscribe(t *testing.T) {
	t.Run("delivers_to_all_subscribers_of_type", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		var mu sync.Mutex
		var got []string

		bus.Subscribe(event.TypeOrderCreated, func(evt event.Event) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, "first")
		})
		bus.Subscribe(event.TypeOrderCreated, func(evt event.Event) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, "second")
		})

		bus.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{OrderID: "O1"})
		bus.Flush()

		mu.Lock()
		defer mu.Unlock()
		assert.ElementsMatch(t, []string{"first", "second"}, got)
	})

	t.Run("does_not_deliver_other_types", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		delivered := 0
		bus.Subscribe(event.TypeLowStockAlert, func(evt event.Event) {
			delivered++
		})

		bus.Publish(event.TypeOrderCreated, nil)
		bus.Flush()

		assert.Zero(t, delivered)
	})

	t.Run("unknown_event_types_are_accepted", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		bus.Publish("SomethingNobodyKnows", map[string]string{"k": "v"})
		bus.Flush()

		history := bus.History("SomethingNobodyKnows")
		require.Len(t, history, 1)
		assert.False(t, history[0].Timestamp.IsZero())
	})

	t.Run("unsubscribe_stops_delivery", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		delivered := 0
		unsubscribe := bus.Subscribe(event.TypeOrderStatusChanged, func(evt event.Event) {
			delivered++
		})

		bus.Publish(event.TypeOrderStatusChanged, nil)
		bus.Flush()
		require.Equal(t, 1, delivered)

		unsubscribe()
		bus.Publish(event.TypeOrderStatusChanged, nil)
		bus.Flush()
		assert.Equal(t, 1, delivered)
	})

	t.Run("events_are_delivered_in_publish_order", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		var got []int
		bus.Subscribe(event.TypeStockChanged, func(evt event.Event) {
			got = append(got, evt.Payload.(int))
		})

		for i := 0; i < 10; i++ {
			bus.Publish(event.TypeStockChanged, i)
		}
		bus.Flush()

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	})
}

func TestBus_HandlerIsolation(t *testing.T) {
	t.Run("panicking_handler_does_not_block_others", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		delivered := 0
		bus.Subscribe(event.TypeOrderCreated, func(evt event.Event) {
			panic("subscriber bug")
		})
		bus.Subscribe(event.TypeOrderCreated, func(evt event.Event) {
			delivered++
		})

		bus.Publish(event.TypeOrderCreated, nil)
		bus.Flush()

		assert.Equal(t, 1, delivered)
	})

	t.Run("panicking_handler_does_not_affect_later_publishes", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		delivered := 0
		bus.Subscribe(event.TypeOrderCreated, func(evt event.Event) {
			if delivered == 0 {
				delivered++
				panic("first delivery fails")
			}
			delivered++
		})

		bus.Publish(event.TypeOrderCreated, nil)
		bus.Publish(event.TypeOrderCreated, nil)
		bus.Flush()

		assert.Equal(t, 2, delivered)
	})
}

func TestBus_History(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		bus.Publish(event.TypeOrderCreated, "a")
		bus.Publish(event.TypeOrderCreated, "b")
		bus.Publish(event.TypeOrderCreated, "c")

		history := bus.History()
		require.Len(t, history, 3)
		assert.Equal(t, "c", history[0].Payload)
		assert.Equal(t, "a", history[2].Payload)
	})

	t.Run("filters_by_type", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		bus.Publish(event.TypeOrderCreated, nil)
		bus.Publish(event.TypeLowStockAlert, nil)
		bus.Publish(event.TypeOrderCreated, nil)

		assert.Len(t, bus.History(event.TypeOrderCreated), 2)
		assert.Len(t, bus.History(event.TypeLowStockAlert), 1)
		assert.Len(t, bus.History(), 3)
	})

	t.Run("evicts_oldest_past_capacity", func(t *testing.T) {
		bus := newBus(5)
		defer bus.Close()

		for i := 0; i < 8; i++ {
			bus.Publish(event.TypeStockChanged, i)
		}

		history := bus.History()
		require.Len(t, history, 5)
		assert.Equal(t, 7, history[0].Payload)
		assert.Equal(t, 3, history[4].Payload)
	})

	t.Run("timestamps_are_monotonic_per_publish_order", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		bus.Publish(event.TypeOrderCreated, "first")
		bus.Publish(event.TypeOrderCreated, "second")

		history := bus.History()
		require.Len(t, history, 2)
		assert.False(t, history[0].Timestamp.Before(history[1].Timestamp))
	})
}

func TestBus_Concurrency(t *testing.T) {
	t.Run("concurrent_publishers_and_subscribers", func(t *testing.T) {
		bus := newBus(0)
		defer bus.Close()

		var mu sync.Mutex
		delivered := 0
		bus.Subscribe(event.TypeStockChanged, func(evt event.Event) {
			mu.Lock()
			defer mu.Unlock()
			delivered++
		})

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 25; i++ {
					bus.Publish(event.TypeStockChanged, fmt.Sprintf("%d-%d", g, i))
				}
			}(g)
		}
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unsubscribe := bus.Subscribe(event.TypeStockChanged, func(evt event.Event) {})
				unsubscribe()
			}()
		}
		wg.Wait()
		bus.Flush()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 200, delivered)
	})
}

func TestBus_Close(t *testing.T) {
	t.Run("publish_after_close_is_dropped", func(t *testing.T) {
		bus := newBus(0)

		delivered := 0
		bus.Subscribe(event.TypeOrderCreated, func(evt event.Event) {
			delivered++
		})

		bus.Publish(event.TypeOrderCreated, nil)
		bus.Close()
		bus.Publish(event.TypeOrderCreated, nil)

		assert.Equal(t, 1, delivered)
	})

	t.Run("close_is_idempotent", func(t *testing.T) {
		bus := newBus(0)
		bus.Close()
		bus.Close()
	})

	t.Run("close_during_concurrent_publishes_is_safe", func(t *testing.T) {
		bus := newBus(0)
		bus.Subscribe(event.TypeStockChanged, func(evt event.Event) {})

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					bus.Publish(event.TypeStockChanged, i)
				}
			}()
		}

		// Racing Close against the publishers must neither panic nor hang;
		// publishes that lose the race are dropped.
		bus.Close()
		wg.Wait()
	})
}
