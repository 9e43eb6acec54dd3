package queries

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// GetQuoteQueryHandler prices a shipment without persisting anything.
// Composes the same repositories and pricing engine as order creation, so an
// advisory quote matches the cost snapshot an order placed the same day would
// get.
//
// Example:
//
//	handler := NewGetQuoteQueryHandler(rateRepo, marginRepo, loyaltyRepo, orderRepo)
//	query, _ := NewGetQuoteQuery(clientID, agentID, "Shanghai", "Rotterdam",
//	    kernel.ServiceTypeFreight)
//
//	quote, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrNoRateAvailable) {
//	    // no rate covers the route today
//	}
type GetQuoteQueryHandler struct {
	rateRepo    ports.RateQuoteRepository
	marginRepo  ports.MarginRuleRepository
	loyaltyRepo ports.LoyaltyScheduleRepository
	orderRepo   ports.OrderRepository
	pricing     services.PricingEngine
}

// NewGetQuoteQueryHandler creates a handler for advisory quote queries.
// The repositories are read outside any transaction; quoting is lock-free.
func NewGetQuoteQueryHandler(
	rateRepo ports.RateQuoteRepository,
	marginRepo ports.MarginRuleRepository,
	loyaltyRepo ports.LoyaltyScheduleRepository,
	orderRepo ports.OrderRepository,
) GetQuoteQueryHandler {
	return GetQuoteQueryHandler{
		rateRepo:    rateRepo,
		marginRepo:  marginRepo,
		loyaltyRepo: loyaltyRepo,
		orderRepo:   orderRepo,
		pricing:     services.NewPricingEngine(),
	}
}

// Handle executes the advisory quote calculation against today's rates.
// Returns errs.ErrNoRateAvailable when no rate covers the route and
// errs.ErrConfigurationMissing when the agent has no margin rule.
func (h GetQuoteQueryHandler) Handle(ctx context.Context, query GetQuoteQuery) (GetQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetQuoteQueryResponse{}, err
	}

	now := time.Now().UTC()

	rates, err := h.rateRepo.FindEffective(ctx,
		query.Origin(), query.Destination(), query.ServiceType(), now)
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}

	rule, err := h.marginRepo.GetActive(ctx, query.AgentID(), query.ServiceType())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return GetQuoteQueryResponse{}, errs.NewConfigurationMissingError("marginRule",
				"no active margin rule for agent and service type")
		}
		return GetQuoteQueryResponse{}, err
	}

	schedule, err := h.loyaltyRepo.GetSchedule(ctx)
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}

	stats, err := h.orderRepo.ClientStats(ctx, query.ClientID())
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}

	quote, err := h.pricing.CalculateQuote(rates, rule, schedule, stats, now)
	if err != nil {
		if errors.Is(err, errs.ErrNoRateAvailable) {
			return GetQuoteQueryResponse{}, errs.NewNoRateAvailableError(
				query.Origin(), query.Destination(), query.ServiceType().String())
		}
		return GetQuoteQueryResponse{}, err
	}

	return GetQuoteQueryResponse{
		FinalPrice:      quote.FinalPrice.Amount(),
		Currency:        quote.FinalPrice.Currency(),
		RawPrice:        quote.Breakdown.RawPrice.Amount(),
		MarginPercent:   quote.Breakdown.MarginPercent,
		DiscountPercent: quote.Breakdown.DiscountPercent,
	}, nil
}
