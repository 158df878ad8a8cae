package commands

import (
	"context"
)

// AmendOrderCommandHandler applies pre-dispatch edits to an order. Item
// replacement recomputes the total and is only allowed while the order awaits
// approval; delivery details may change until dispatch. No event is published:
// an amendment is not a lifecycle transition.
type AmendOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAmendOrderCommandHandler creates a handler for order amendments.
func NewAmendOrderCommandHandler(uowFactory OrderUoWFactory) AmendOrderCommandHandler {
	return AmendOrderCommandHandler{uowFactory: uowFactory}
}

// Handle applies the requested edits under the order's row lock.
func (h AmendOrderCommandHandler) Handle(ctx context.Context, cmd AmendOrderCommand) error {
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

	toAmend, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if items := cmd.Items(); len(items) > 0 {
		if err = toAmend.ReplaceItems(items); err != nil {
			return err
		}
	}

	if cmd.UpdatesDelivery() {
		if err = toAmend.UpdateDelivery(cmd.DeliveryAddress(), cmd.DeliveryInstructions()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, toAmend); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
