package commands

import (
	"context"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/ports"
	"mediquick/internal/pkg/errs"
)

// RestockCommandHandler credits received supply to a product's stock record.
type RestockCommandHandler struct {
	uowFactory InventoryUoWFactory
	publisher  ports.EventPublisher
}

// NewRestockCommandHandler creates a handler for supply restocks.
func NewRestockCommandHandler(uowFactory InventoryUoWFactory, publisher ports.EventPublisher) RestockCommandHandler {
	return RestockCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle increments the product's stock and announces the new level.
func (h RestockCommandHandler) Handle(ctx context.Context, cmd RestockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inventoryRepo := uow.InventoryRepository()

	records, err := inventoryRepo.GetForUpdate(ctx, []kernel.UUID{cmd.ProductID()})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errs.NewObjectNotFoundError("product", cmd.ProductID().String())
	}

	record := records[0]
	if err = record.Release(cmd.Quantity()); err != nil {
		return err
	}

	if err = inventoryRepo.Update(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(event.TypeStockChanged, stockChanged(
		record.ProductID(), record.Name(), record.CurrentStock(),
		fmt.Sprintf("%s restocked to %d", record.Name(), record.CurrentStock()),
	))

	return nil
}
