// Package loyalty contains the tiered client discount schedule. A client's
// tier is the highest tier whose order-count and cumulative-spend thresholds
// are both satisfied by the client's history; the tier's discount is applied
// as a percentage reduction to the margined price.
package loyalty

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrTierIsNotConstructed is returned when a Tier instance was not created
	// through NewTier.
	ErrTierIsNotConstructed = errors.New("Tier must be created via NewTier constructor")

	// ErrScheduleIsNotConstructed is returned when a Schedule instance was not
	// created through NewSchedule.
	ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule constructor")
)

// Tier is one rung of the loyalty ladder: a pair of thresholds and the
// discount granted once both are reached.
type Tier struct {
	name            string
	minOrders       int
	minAmount       decimal.Decimal
	discountPercent decimal.Decimal

	isConstructed bool
}

// NewTier creates a Tier. Thresholds must be non-negative and the discount
// must lie in [0, 100].
func NewTier(name string, minOrders int, minAmount, discountPercent decimal.Decimal) (Tier, error) {
	if name == "" {
		return Tier{}, errs.NewValueIsRequiredError("name")
	}
	if minOrders < 0 {
		return Tier{}, errs.NewValueIsInvalidErrorWithCause("minOrders",
			fmt.Errorf("%d is negative", minOrders))
	}
	if minAmount.IsNegative() {
		return Tier{}, errs.NewValueIsInvalidErrorWithCause("minAmount",
			fmt.Errorf("%s is negative", minAmount))
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return Tier{}, errs.NewValueIsOutOfRangeError("discountPercent",
			discountPercent.String(), 0, 100)
	}

	return Tier{
		name:            name,
		minOrders:       minOrders,
		minAmount:       minAmount,
		discountPercent: discountPercent,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Tier was created via NewTier.
func (t Tier) Validate() error {
	if !t.isConstructed {
		return ErrTierIsNotConstructed
	}
	return nil
}

// Name returns the tier's display name.
func (t Tier) Name() string {
	return t.name
}

// MinOrders returns the minimum historical order count for the tier.
func (t Tier) MinOrders() int {
	return t.minOrders
}

// MinAmount returns the minimum cumulative spend for the tier.
func (t Tier) MinAmount() decimal.Decimal {
	return t.minAmount
}

// DiscountPercent returns the discount granted by the tier.
func (t Tier) DiscountPercent() decimal.Decimal {
	return t.discountPercent
}

// isSatisfiedBy reports whether both thresholds are met by the given history.
func (t Tier) isSatisfiedBy(totalOrders int, totalRevenue decimal.Decimal) bool {
	return totalOrders >= t.minOrders && totalRevenue.GreaterThanOrEqual(t.minAmount)
}

// Schedule is the ordered list of loyalty tiers. Tiers are kept ascending by
// threshold; the invariant that thresholds and discounts are monotonically
// non-decreasing is checked at construction, so resolution can simply scan
// from the highest tier down.
type Schedule struct {
	tiers []Tier

	isConstructed bool
}

// NewSchedule creates a Schedule from tiers sorted ascending by thresholds.
// Both thresholds and the discount must be non-decreasing from tier to tier;
// a violated ordering is a configuration defect and is rejected.
// An empty schedule is valid and resolves every client to a zero discount.
func NewSchedule(tiers []Tier) (Schedule, error) {
	for i, tier := range tiers {
		if err := tier.Validate(); err != nil {
			return Schedule{}, err
		}
		if i == 0 {
			continue
		}

		prev := tiers[i-1]
		if tier.minOrders < prev.minOrders ||
			tier.minAmount.LessThan(prev.minAmount) ||
			tier.discountPercent.LessThan(prev.discountPercent) {
			return Schedule{}, errs.NewValueIsInvalidErrorWithCause("tiers",
				fmt.Errorf("tier %q is not monotonically above tier %q", tier.name, prev.name))
		}
	}

	copied := make([]Tier, len(tiers))
	copy(copied, tiers)
	return Schedule{tiers: copied, isConstructed: true}, nil
}

// Validate ensures the Schedule was created via NewSchedule.
func (s Schedule) Validate() error {
	if !s.isConstructed {
		return ErrScheduleIsNotConstructed
	}
	return nil
}

// Tiers returns a copy of the schedule's tiers in ascending order.
func (s Schedule) Tiers() []Tier {
	copied := make([]Tier, len(s.tiers))
	copy(copied, s.tiers)
	return copied
}

// ResolveDiscount returns the discount percentage for a client with the given
// cumulative order count and spend: the highest tier whose thresholds are both
// satisfied, or zero when none match. Deterministic and side-effect free;
// monotonic in both arguments because the tier list itself is monotone.
func (s Schedule) ResolveDiscount(totalOrders int, totalRevenue decimal.Decimal) decimal.Decimal {
	for i := len(s.tiers) - 1; i >= 0; i-- {
		if s.tiers[i].isSatisfiedBy(totalOrders, totalRevenue) {
			return s.tiers[i].discountPercent
		}
	}

	return decimal.Zero
}

// ResolveTier returns the matched tier and true, or the zero Tier and false
// when the client qualifies for no tier.
func (s Schedule) ResolveTier(totalOrders int, totalRevenue decimal.Decimal) (Tier, bool) {
	for i := len(s.tiers) - 1; i >= 0; i-- {
		if s.tiers[i].isSatisfiedBy(totalOrders, totalRevenue) {
			return s.tiers[i], true
		}
	}

	return Tier{}, false
}
