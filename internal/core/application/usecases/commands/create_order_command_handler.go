package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Prices the shipment against the agent's effective rates, claims the next
// order number for the current year and persists the order in "pending"
// status, all in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateOrderCommand(orderID, clientID, agentID,
//	    "Shanghai", "Rotterdam", kernel.ServiceTypeFreight)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory PricingUoWFactory
	pricing    services.PricingEngine
	publisher  ports.OrderEventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a PricingUoWFactory for transactional persistence; publisher may be
// nil when order change notifications are disabled.
func NewCreateOrderCommandHandler(
	uowFactory PricingUoWFactory,
	publisher ports.OrderEventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    services.NewPricingEngine(),
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// The price the client saw on a same-day quote is reproduced here: the same
// rates, margin rule and loyalty discount feed the cost snapshot. Returns
// errs.ErrNoRateAvailable when no rate covers the route on the creation date
// and errs.ErrConfigurationMissing when the agent has no margin rule.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quote, err := h.priceOrder(ctx, uow, cmd, now)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	sequence, err := orderRepo.NextOrderSequence(ctx, now.Year())
	if err != nil {
		return err
	}

	cost, err := order.NewCost(quote.FinalPrice, quote.Breakdown.RawPrice,
		quote.Breakdown.MarginPercent, quote.Breakdown.DiscountPercent)
	if err != nil {
		return err
	}

	agentID := cmd.AgentID()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		order.FormatOrderNumber(now.Year(), sequence),
		cmd.ClientID(),
		&agentID,
		cmd.Origin(),
		cmd.Destination(),
		cmd.ServiceType(),
		cost,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, aggregate)
	return nil
}

// priceOrder gathers the pricing inputs inside the transaction and runs the
// pricing engine. A missing margin rule surfaces as a configuration error,
// not a not-found error: the agent, not the caller, has to fix it.
func (h *CreateOrderCommandHandler) priceOrder(
	ctx context.Context,
	uow PricingUoW,
	cmd CreateOrderCommand,
	now time.Time,
) (services.Quote, error) {
	rates, err := uow.RateQuoteRepository().FindEffective(ctx,
		cmd.Origin(), cmd.Destination(), cmd.ServiceType(), now)
	if err != nil {
		return services.Quote{}, err
	}

	rule, err := uow.MarginRuleRepository().GetActive(ctx, cmd.AgentID(), cmd.ServiceType())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return services.Quote{}, errs.NewConfigurationMissingError("marginRule",
				"no active margin rule for agent and service type")
		}
		return services.Quote{}, err
	}

	schedule, err := uow.LoyaltyScheduleRepository().GetSchedule(ctx)
	if err != nil {
		return services.Quote{}, err
	}

	stats, err := uow.OrderRepository().ClientStats(ctx, cmd.ClientID())
	if err != nil {
		return services.Quote{}, err
	}

	quote, err := h.pricing.CalculateQuote(rates, rule, schedule, stats, now)
	if err != nil {
		if errors.Is(err, errs.ErrNoRateAvailable) {
			return services.Quote{}, errs.NewNoRateAvailableError(
				cmd.Origin(), cmd.Destination(), cmd.ServiceType().String())
		}
		return services.Quote{}, err
	}

	return quote, nil
}

// publishOrderChanged emits the order change notification after commit.
// Best effort: the transaction already succeeded, a delivery failure is the
// publisher's to log and must not fail the command.
func publishOrderChanged(ctx context.Context, publisher ports.OrderEventPublisher, aggregate *order.Order) {
	if publisher == nil {
		return
	}
	_ = publisher.PublishOrderChanged(ctx, aggregate)
}
