package commands

import (
	"context"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/ports"
)

// MarkDeliveredCommandHandler performs the InTransit -> Delivered transition.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmation.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle marks the order delivered and announces the terminal transition.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	toDeliver, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := toDeliver.Status()
	if err = toDeliver.MarkDelivered(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, toDeliver); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(event.TypeOrderStatusChanged, statusChanged(
		toDeliver.ID(), fromStatus, toDeliver.Status(), toDeliver.AssignedAgent(), "",
		fmt.Sprintf("Order %s has been delivered", toDeliver.ID()),
	))

	return nil
}
