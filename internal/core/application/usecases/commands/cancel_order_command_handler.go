package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// CancelOrderCommandHandler handles the business logic for order cancellation.
// Cancellation is allowed from any non-terminal status, including in transit;
// the stage history stays untouched for audit.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation operations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order cancellation command under optimistic locking,
// retrying a bounded number of times when a concurrent transition wins the race.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Cancel()
	})
	if err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, aggregate)
	return nil
}
