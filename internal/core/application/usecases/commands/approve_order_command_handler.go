package commands

import (
	"context"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/core/domain/services"
	"mediquick/internal/core/ports"
)

// ApproveOrderCommandHandler performs the PendingApproval -> Processing
// transition together with the all-or-nothing stock reservation it implies.
//
// The order row and every involved inventory row are locked inside a single
// transaction, so two approvals competing for the last units of a product are
// serialized: exactly one commits, the other observes the decremented stock
// and fails with InsufficientStock while its order stays PendingApproval.
type ApproveOrderCommandHandler struct {
	uowFactory  UoWFactory
	reservation services.StockReservationService
	publisher   ports.EventPublisher
}

// NewApproveOrderCommandHandler creates a handler for order approval.
func NewApproveOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory:  uowFactory,
		reservation: services.NewStockReservationService(),
		publisher:   publisher,
	}
}

// Handle validates the transition, reserves stock for all items, and commits
// both effects atomically. Events follow only after a successful commit.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
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

	toApprove, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := toApprove.Status()
	if err = toApprove.Approve(); err != nil {
		return err
	}

	items := toApprove.Items()
	inventoryRepo := uow.InventoryRepository()
	records, err := inventoryRepo.GetForUpdate(ctx, productIDs(items))
	if err != nil {
		return err
	}

	if err = h.reservation.ReserveAll(records, items); err != nil {
		return err
	}

	for _, record := range records {
		if err = inventoryRepo.Update(ctx, record); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, toApprove); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(event.TypeOrderStatusChanged, statusChanged(
		toApprove.ID(), fromStatus, toApprove.Status(), "", "",
		fmt.Sprintf("Order %s has been approved and is being processed", toApprove.ID()),
	))
	h.publishStockEvents(records)

	return nil
}

// publishStockEvents announces the new stock levels after a reservation,
// including reorder alerts for any product now at or below its threshold.
func (h ApproveOrderCommandHandler) publishStockEvents(records []*inventory.Record) {
	for _, record := range records {
		h.publisher.Publish(event.TypeStockChanged, stockChanged(
			record.ProductID(), record.Name(), record.CurrentStock(),
			fmt.Sprintf("%s stock updated to %d", record.Name(), record.CurrentStock()),
		))

		if record.LowStock() {
			h.publisher.Publish(event.TypeLowStockAlert, event.LowStockAlertPayload{
				ProductID:        record.ProductID().String(),
				ProductName:      record.Name(),
				CurrentStock:     record.CurrentStock(),
				ReorderThreshold: record.ReorderThreshold(),
				Message:          fmt.Sprintf("%s stock is low (%d remaining)", record.Name(), record.CurrentStock()),
			})
		}
	}
}

// productIDs collects the distinct products referenced by the items.
func productIDs(items []order.Item) []kernel.UUID {
	seen := make(map[kernel.UUID]bool, len(items))
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID()] {
			seen[item.ProductID()] = true
			ids = append(ids, item.ProductID())
		}
	}
	return ids
}
