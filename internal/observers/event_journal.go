package observers

import (
	"context"
	"log/slog"
	"time"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/ports"
	"mediquick/internal/eventbus"
)

const journalWriteTimeout = 5 * time.Second

// EventJournal copies every published event into the durable event log.
// A failed write is logged and dropped; journalling never blocks or fails the
// publishing side.
type EventJournal struct {
	log    ports.EventLogRepository
	logger *slog.Logger

	unsubscribes []func()
}

// NewEventJournal creates a journal writing to the given log and subscribes
// it to every event type.
func NewEventJournal(bus *eventbus.Bus, log ports.EventLogRepository, logger *slog.Logger) *EventJournal {
	j := &EventJournal{
		log:    log,
		logger: logger.With("component", "event_journal"),
	}

	for _, eventType := range []string{
		event.TypeOrderCreated,
		event.TypeOrderStatusChanged,
		event.TypeAgentDispatched,
		event.TypeStockChanged,
		event.TypeLowStockAlert,
		event.TypeAgentLocationUpdated,
	} {
		j.unsubscribes = append(j.unsubscribes, bus.Subscribe(eventType, j.append))
	}

	return j
}

// Close detaches the journal from the bus.
func (j *EventJournal) Close() {
	for _, unsubscribe := range j.unsubscribes {
		unsubscribe()
	}
	j.unsubscribes = nil
}

func (j *EventJournal) append(evt event.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
	defer cancel()

	if err := j.log.Append(ctx, evt); err != nil {
		j.logger.Error("failed to journal event", "type", evt.Type, "error", err)
	}
}
