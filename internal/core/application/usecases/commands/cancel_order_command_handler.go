package commands

import (
	"context"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/core/domain/services"
	"mediquick/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order. When the order already made it
// to Processing its stock reservation is returned to the ledger in the same
// transaction.
type CancelOrderCommandHandler struct {
	uowFactory  UoWFactory
	reservation services.StockReservationService
	publisher   ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:  uowFactory,
		reservation: services.NewStockReservationService(),
		publisher:   publisher,
	}
}

// Handle cancels the order and, if stock was reserved, releases it.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	toCancel, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := toCancel.Status()
	if err = toCancel.Cancel(); err != nil {
		return err
	}

	var released []*inventory.Record
	if fromStatus == order.Processing {
		released, err = h.releaseStock(ctx, uow, toCancel.Items())
		if err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, toCancel); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(event.TypeOrderStatusChanged, statusChanged(
		toCancel.ID(), fromStatus, toCancel.Status(), "", cmd.Reason(),
		fmt.Sprintf("Order %s has been cancelled", toCancel.ID()),
	))
	for _, record := range released {
		h.publisher.Publish(event.TypeStockChanged, stockChanged(
			record.ProductID(), record.Name(), record.CurrentStock(),
			fmt.Sprintf("%s stock updated to %d", record.Name(), record.CurrentStock()),
		))
	}

	return nil
}

func (h CancelOrderCommandHandler) releaseStock(
	ctx context.Context,
	uow UoW,
	items []order.Item,
) ([]*inventory.Record, error) {
	inventoryRepo := uow.InventoryRepository()

	records, err := inventoryRepo.GetForUpdate(ctx, productIDs(items))
	if err != nil {
		return nil, err
	}

	if err = h.reservation.ReleaseAll(records, items); err != nil {
		return nil, err
	}

	for _, record := range records {
		if err = inventoryRepo.Update(ctx, record); err != nil {
			return nil, err
		}
	}

	return records, nil
}
