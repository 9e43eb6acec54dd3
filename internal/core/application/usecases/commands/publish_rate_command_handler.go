package commands

import (
	"context"

	"freight/internal/core/domain/model/rate"
)

// PublishRateCommandHandler handles the business logic for rate publication.
// A published quote becomes a pricing candidate for every order and advisory
// quote on its route from its first effective day.
type PublishRateCommandHandler struct {
	uowFactory RateUoWFactory
}

// NewPublishRateCommandHandler creates a handler for rate publication operations.
func NewPublishRateCommandHandler(uowFactory RateUoWFactory) PublishRateCommandHandler {
	return PublishRateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rate publication command. The RateQuote constructor
// enforces the route, price and validity window rules. Any active quote for
// the same agent, route, service type and container type is deactivated in
// the same transaction, republishing supersedes and never mutates.
func (h *PublishRateCommandHandler) Handle(ctx context.Context, cmd PublishRateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	quote, err := rate.NewRateQuote(
		cmd.RateID(),
		cmd.AgentID(),
		cmd.Origin(),
		cmd.Destination(),
		cmd.ServiceType(),
		cmd.ContainerType(),
		cmd.Price(),
		cmd.ValidFrom(),
		cmd.ValidTo(),
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

	repo := uow.RateQuoteRepository()

	superseded, err := repo.FindActiveForKey(ctx,
		quote.AgentID(), quote.Origin(), quote.Destination(), quote.ServiceType(), quote.ContainerType())
	if err != nil {
		return err
	}

	for _, prior := range superseded {
		prior.Deactivate()
		if err = repo.Update(ctx, prior); err != nil {
			return err
		}
	}

	if err = repo.Add(ctx, quote); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
