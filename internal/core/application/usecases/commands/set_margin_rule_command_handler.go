package commands

import (
	"context"

	"freight/internal/core/domain/model/margin"
)

// SetMarginRuleCommandHandler handles the business logic for margin rule
// configuration. A newly set rule affects future pricing only; cost snapshots
// on existing orders keep the percentage that was in force at creation.
type SetMarginRuleCommandHandler struct {
	uowFactory MarginUoWFactory
}

// NewSetMarginRuleCommandHandler creates a handler for margin rule configuration.
func NewSetMarginRuleCommandHandler(uowFactory MarginUoWFactory) SetMarginRuleCommandHandler {
	return SetMarginRuleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the margin rule command. The Rule constructor rejects
// percentages outside the service type's bounds; the repository deactivates
// the previous rule in the same transaction.
func (h *SetMarginRuleCommandHandler) Handle(ctx context.Context, cmd SetMarginRuleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	rule, err := margin.NewRule(cmd.RuleID(), cmd.AgentID(), cmd.ServiceType(), cmd.MarginPercent())
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

	if err = uow.MarginRuleRepository().Upsert(ctx, rule); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
