package commands

import (
	"context"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/ports"
)

// RejectOrderCommandHandler performs the PendingApproval -> Cancelled
// transition via the rejection path. No stock is involved: rejection happens
// before any reservation exists.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle rejects the order, recording the reason, and publishes the
// status change carrying it.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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

	toReject, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := toReject.Status()
	if err = toReject.Reject(cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, toReject); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(event.TypeOrderStatusChanged, statusChanged(
		toReject.ID(), fromStatus, toReject.Status(), "", cmd.Reason(),
		fmt.Sprintf("Order %s has been rejected: %s", toReject.ID(), cmd.Reason()),
	))

	return nil
}
