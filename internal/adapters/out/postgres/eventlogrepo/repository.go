package eventlogrepo

import (
	"context"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEventLogRepository implements ports.EventLogRepository using GORM.
type GormEventLogRepository struct {
	db *gorm.DB
}

// NewGormEventLogRepository creates a new GORM event log repository.
func NewGormEventLogRepository(db *gorm.DB) *GormEventLogRepository {
	return &GormEventLogRepository{db: db}
}

// Append persists an event. Rows are never updated or deleted.
func (r *GormEventLogRepository) Append(ctx context.Context, evt event.Event) error {
	dto, err := fromDomain(evt)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the events referencing the given order, oldest first.
func (r *GormEventLogRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]event.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos), nil
}

// ListRecent returns up to limit most recently appended events, newest first.
func (r *GormEventLogRepository) ListRecent(ctx context.Context, limit int) ([]event.Event, error) {
	if limit < 1 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos), nil
}

func toDomainSlice(dtos []EventDTO) []event.Event {
	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, toDomain(dto))
	}
	return events
}
