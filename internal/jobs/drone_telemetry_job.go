package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// progressPerTick is how much of the route a drone covers between telemetry
// ticks. Real telemetry would come from the fleet; this simulation stands in
// for it behind the same events.
const progressPerTick = 0.1

// DroneTelemetryJob publishes AgentLocationUpdated for every in-transit order
// on a fixed schedule. Progress is interpolated per order and forgotten once
// the order leaves transit.
type DroneTelemetryJob struct {
	orders    ports.OrderRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger

	mu       sync.Mutex
	progress map[string]float64
}

// NewDroneTelemetryJob creates the telemetry job.
func NewDroneTelemetryJob(
	orders ports.OrderRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *DroneTelemetryJob {
	return &DroneTelemetryJob{
		orders:    orders,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "drone_telemetry_job"),
		progress:  make(map[string]float64),
	}
}

// Start begins the telemetry job, ticking every five seconds.
func (j *DroneTelemetryJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Drone telemetry job started (ticking every five seconds)")
	return nil
}

// Stop stops the telemetry job.
func (j *DroneTelemetryJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Drone telemetry job stopped")
}

func (j *DroneTelemetryJob) tick() {
	ctx := context.Background()

	inTransit, err := j.orders.GetAllInStatus(ctx, order.InTransit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Drone telemetry tick failed", "error", err)
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	active := make(map[string]bool, len(inTransit))
	for _, o := range inTransit {
		orderID := o.ID().String()
		active[orderID] = true

		progress := j.progress[orderID] + progressPerTick
		if progress > 1.0 {
			progress = 1.0
		}
		j.progress[orderID] = progress

		j.publisher.Publish(event.TypeAgentLocationUpdated, event.AgentLocationUpdatedPayload{
			OrderID:  orderID,
			AgentID:  o.AssignedAgent(),
			Progress: progress,
			Message:  fmt.Sprintf("Drone %s is %.0f%% of the way to the destination", o.AssignedAgent(), progress*100),
		})
	}

	// Drop progress for orders delivered or cancelled since the last tick.
	for orderID := range j.progress {
		if !active[orderID] {
			delete(j.progress, orderID)
		}
	}
}
