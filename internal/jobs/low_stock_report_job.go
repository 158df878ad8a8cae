package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// LowStockReportJob re-announces products still at or below their reorder
// threshold once a minute, so an alert missed at reservation time is not
// missed forever.
type LowStockReportJob struct {
	inventory ports.InventoryRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLowStockReportJob creates the low stock report job.
func NewLowStockReportJob(
	inventory ports.InventoryRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *LowStockReportJob {
	return &LowStockReportJob{
		inventory: inventory,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "low_stock_report_job"),
	}
}

// Start begins the report job, ticking every minute.
func (j *LowStockReportJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Low stock report job started (ticking every minute)")
	return nil
}

// Stop stops the report job.
func (j *LowStockReportJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Low stock report job stopped")
}

func (j *LowStockReportJob) tick() {
	ctx := context.Background()

	records, err := j.inventory.GetAllLowStock(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock report tick failed", "error", err)
		return
	}

	for _, record := range records {
		j.publisher.Publish(event.TypeLowStockAlert, event.LowStockAlertPayload{
			ProductID:        record.ProductID().String(),
			ProductName:      record.Name(),
			CurrentStock:     record.CurrentStock(),
			ReorderThreshold: record.ReorderThreshold(),
			Message:          fmt.Sprintf("%s stock is low (%d remaining)", record.Name(), record.CurrentStock()),
		})
	}
}
