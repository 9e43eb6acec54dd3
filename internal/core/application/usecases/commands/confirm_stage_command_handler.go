package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// ConfirmStageCommandHandler handles the business logic for client stage
// confirmation. Completes a stage waiting in "requires_confirmation" and
// applies the status transition it gates.
type ConfirmStageCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewConfirmStageCommandHandler creates a handler for stage confirmation operations.
func NewConfirmStageCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) ConfirmStageCommandHandler {
	return ConfirmStageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the stage confirmation command under optimistic locking,
// retrying a bounded number of times when a concurrent transition wins the race.
func (h *ConfirmStageCommandHandler) Handle(ctx context.Context, cmd ConfirmStageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ConfirmStage(cmd.StageName(), cmd.ClientID())
	})
	if err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, aggregate)
	return nil
}
