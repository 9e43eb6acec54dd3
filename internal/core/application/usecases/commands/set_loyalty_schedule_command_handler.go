package commands

import (
	"context"
)

// SetLoyaltyScheduleCommandHandler handles replacement of the loyalty tier
// schedule. The whole schedule is swapped in one transaction so concurrent
// pricing reads never observe a half-replaced tier list.
type SetLoyaltyScheduleCommandHandler struct {
	uowFactory LoyaltyUoWFactory
}

// NewSetLoyaltyScheduleCommandHandler creates a handler for schedule replacement.
func NewSetLoyaltyScheduleCommandHandler(uowFactory LoyaltyUoWFactory) SetLoyaltyScheduleCommandHandler {
	return SetLoyaltyScheduleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the schedule replacement command.
func (h *SetLoyaltyScheduleCommandHandler) Handle(ctx context.Context, cmd SetLoyaltyScheduleCommand) error {
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

	if err := uow.LoyaltyScheduleRepository().ReplaceSchedule(ctx, cmd.Schedule()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
