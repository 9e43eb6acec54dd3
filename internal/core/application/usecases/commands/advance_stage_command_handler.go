package commands

import (
	"context"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// AdvanceStageCommandHandler handles the business logic for stage advancement.
// Moves the order's current stage forward and, when the stage gates a status
// transition, advances the order status with it.
//
// Example:
//
//	handler := NewAdvanceStageCommandHandler(uowFactory, publisher)
//	cmd, _ := NewAdvanceStageCommand(orderID, "vessel_departure")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("stage advancement failed: %w", err)
//	}
type AdvanceStageCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewAdvanceStageCommandHandler creates a handler for stage advancement operations.
func NewAdvanceStageCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the stage advancement command under optimistic locking,
// retrying a bounded number of times when a concurrent transition wins the race.
func (h *AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.AdvanceStage(cmd.StageName())
	})
	if err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, aggregate)
	return nil
}
