package commands

import (
	"context"
)

// ExpireRatesCommandHandler deactivates rate quotes whose validity window has
// passed. Expiry is a sweep over the active set, each run is idempotent.
type ExpireRatesCommandHandler struct {
	uowFactory RateUoWFactory
}

// NewExpireRatesCommandHandler creates a handler for rate expiry sweeps.
func NewExpireRatesCommandHandler(uowFactory RateUoWFactory) ExpireRatesCommandHandler {
	return ExpireRatesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deactivates every active quote stale at the command's reference
// time and reports how many it swept.
func (h *ExpireRatesCommandHandler) Handle(ctx context.Context, cmd ExpireRatesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RateQuoteRepository()

	expired, err := repo.FindExpired(ctx, cmd.AsOf())
	if err != nil {
		return 0, err
	}

	for _, quote := range expired {
		quote.Deactivate()
		if err = repo.Update(ctx, quote); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(expired), nil
}
