package commands

import (
	"context"
	"fmt"

	"mediquick/internal/core/domain/model/event"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/core/ports"
)

// SubmitOrderCommandHandler creates new orders in PendingApproval status.
// Publishes OrderCreated once the order is durably persisted.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
func NewSubmitOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the submission: constructs the aggregate (computing the
// total from the price snapshots), persists it, and announces it.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Customer(),
		cmd.Items(),
		cmd.DeliveryAddress(),
		cmd.DeliveryInstructions(),
		cmd.PaymentMethod(),
		cmd.PaymentStatus(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(event.TypeOrderCreated, event.OrderCreatedPayload{
		OrderID:  newOrder.ID().String(),
		Customer: newOrder.Customer(),
		Total:    newOrder.Total(),
		Message:  fmt.Sprintf("Order %s has been placed and is awaiting approval", newOrder.ID()),
	})

	return nil
}
