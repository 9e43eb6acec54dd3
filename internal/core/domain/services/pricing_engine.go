package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/loyalty"
	"freight/internal/core/domain/model/margin"
	"freight/internal/core/domain/model/rate"
	"freight/internal/pkg/errs"
)

// Breakdown explains how a final price was produced: the agent's raw rate,
// the margin markup and the loyalty discount that were applied to it.
type Breakdown struct {
	RawPrice        kernel.Money
	MarginPercent   decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Quote is the result of a pricing calculation: the price the client pays,
// the breakdown behind it and the rate that won the selection.
type Quote struct {
	RateID     kernel.UUID
	FinalPrice kernel.Money
	Breakdown  Breakdown
}

// PricingEngine is a domain service that calculates the client price for a
// shipment from the agent rates effective on the calculation date, the agent's
// margin rule and the client's loyalty history.
//
// The calculation is deterministic and side-effect free:
//   - The cheapest effective rate wins; ties break on earlier validFrom, then
//     on container type
//   - The margin markup is applied to the raw rate first
//   - The loyalty discount is applied to the margined price
//
// CreateOrder and the advisory quote endpoint share this service, so a quote
// shown to the client matches the cost snapshot of an order placed the same
// day against the same rates.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// CalculateQuote produces the client price from the candidate rates.
//
// Parameters:
//   - quotes: candidate agent rates, already filtered by route and service type
//   - rule: the active margin rule for the agent and service type
//   - schedule: the loyalty schedule resolving the client's discount
//   - stats: the client's delivered-order history
//   - asOf: the calculation date; only rates effective on it are considered
//
// Returns errs.ErrNoRateAvailable when no candidate rate is effective on the
// calculation date, and validation errors for improperly constructed inputs.
func (p PricingEngine) CalculateQuote(
	quotes []*rate.RateQuote,
	rule *margin.Rule,
	schedule loyalty.Schedule,
	stats loyalty.ClientStats,
	asOf time.Time,
) (Quote, error) {
	if err := rule.Validate(); err != nil {
		return Quote{}, err
	}
	if err := schedule.Validate(); err != nil {
		return Quote{}, err
	}

	best, err := p.selectRate(quotes, asOf)
	if err != nil {
		return Quote{}, err
	}

	rawPrice := best.Price()
	margined, err := rule.Apply(rawPrice)
	if err != nil {
		return Quote{}, err
	}

	discountPercent := schedule.ResolveDiscount(stats.TotalOrders, stats.TotalRevenue)
	finalPrice, err := margined.ApplyDiscount(discountPercent)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		RateID:     best.ID(),
		FinalPrice: finalPrice,
		Breakdown: Breakdown{
			RawPrice:        rawPrice,
			MarginPercent:   rule.MarginPercent(),
			DiscountPercent: discountPercent,
		},
	}, nil
}

// selectRate picks the cheapest rate effective on the calculation date.
// Ties break on the earlier validFrom; a remaining tie breaks on the
// lexicographically smaller container type, which keeps the selection
// deterministic across calls with identical inputs.
func (p PricingEngine) selectRate(quotes []*rate.RateQuote, asOf time.Time) (*rate.RateQuote, error) {
	var best *rate.RateQuote

	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if !q.IsEffectiveAt(asOf) {
			continue
		}
		if best == nil || p.cheaperThan(q, best) {
			best = q
		}
	}

	if best == nil {
		return nil, errs.ErrNoRateAvailable
	}

	return best, nil
}

func (p PricingEngine) cheaperThan(candidate, best *rate.RateQuote) bool {
	byPrice := candidate.Price().Amount().Cmp(best.Price().Amount())
	if byPrice != 0 {
		return byPrice < 0
	}

	if !candidate.ValidFrom().Equal(best.ValidFrom()) {
		return candidate.ValidFrom().Before(best.ValidFrom())
	}

	return strings.Compare(candidate.ContainerType(), best.ContainerType()) < 0
}
