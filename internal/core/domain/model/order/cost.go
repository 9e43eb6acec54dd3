package order

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrCostIsNotConstructed is returned when a Cost instance was not created
	// through NewCost.
	ErrCostIsNotConstructed = errors.New("Cost must be created via NewCost constructor")
)

// Cost is the price snapshot taken when an order is created: the final total
// together with the breakdown that produced it. It is immutable for the life
// of the order; later rate or margin changes never alter it.
type Cost struct {
	total           kernel.Money
	rawPrice        kernel.Money
	marginPercent   decimal.Decimal
	discountPercent decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCost creates a Cost snapshot. Total and raw price must be constructed
// Money values in the same currency; the percentages record which margin rule
// and loyalty tier were applied.
func NewCost(
	total kernel.Money,
	rawPrice kernel.Money,
	marginPercent decimal.Decimal,
	discountPercent decimal.Decimal,
) (Cost, error) {
	if err := total.Validate(); err != nil {
		return Cost{}, err
	}
	if err := rawPrice.Validate(); err != nil {
		return Cost{}, err
	}
	if total.Currency() != rawPrice.Currency() {
		return Cost{}, kernel.ErrCurrencyMismatch
	}
	if marginPercent.IsNegative() {
		return Cost{}, errs.NewValueIsInvalidError("marginPercent")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return Cost{}, errs.NewValueIsOutOfRangeError("discountPercent", discountPercent.String(), 0, 100)
	}

	return Cost{
		total:           total,
		rawPrice:        rawPrice,
		marginPercent:   marginPercent,
		discountPercent: discountPercent,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Cost was created via NewCost.
func (c Cost) Validate() error {
	return c.guard.Validate(ErrCostIsNotConstructed)
}

// Total returns the final price charged to the client.
func (c Cost) Total() kernel.Money {
	return c.total
}

// RawPrice returns the agent's raw rate before margin and discount.
func (c Cost) RawPrice() kernel.Money {
	return c.rawPrice
}

// MarginPercent returns the margin percentage that was applied.
func (c Cost) MarginPercent() decimal.Decimal {
	return c.marginPercent
}

// DiscountPercent returns the loyalty discount percentage that was applied.
func (c Cost) DiscountPercent() decimal.Decimal {
	return c.discountPercent
}
