package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const currencyCodeLength = 3

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through NewMoney. The zero value carries no currency and must not take part
// in pricing arithmetic.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// ErrCurrencyMismatch is returned when arithmetic is attempted across two
// different currencies. Multi-currency settlement is outside the core; every
// computation happens in the currency of the selected rate quotation.
var ErrCurrencyMismatch = errs.NewValueIsInvalidError("currency mismatch")

// Money is an immutable value object representing a monetary amount in a single
// currency. Amounts are held as arbitrary-precision decimals so that margin and
// discount percentages never accumulate binary floating point error.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.NewFromInt(100), "USD")
//	if err != nil {
//	    // handle validation error
//	}
//	margined, _ := price.ApplyMarkup(decimal.NewFromInt(15)) // 115 USD
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value. The amount must be non-negative and the
// currency must be a three-letter ISO-4217 style code; it is stored upper-cased.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}

	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != currencyCodeLength {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter currency code", currency))
	}

	m.amount = amount
	m.currency = currency
	return m, nil
}

// Validate ensures the Money value was constructed via NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the upper-cased currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual reports whether two Money values have the same currency and a
// numerically equal amount.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Cmp compares the amounts of two Money values in the same currency.
// It returns -1, 0 or +1 and fails with ErrCurrencyMismatch otherwise.
func (m Money) Cmp(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, ErrCurrencyMismatch
	}
	return m.amount.Cmp(other.amount), nil
}

// Add returns the sum of two Money values in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}

	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// ApplyMarkup returns the amount increased by the given percentage:
// amount * (1 + percent/100). Used by the margin policy.
func (m Money) ApplyMarkup(percent decimal.Decimal) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}

	factor := decimal.NewFromInt(1).Add(percent.Div(decimal.NewFromInt(100)))
	return NewMoney(m.amount.Mul(factor), m.currency)
}

// ApplyDiscount returns the amount reduced by the given percentage:
// amount * (1 - percent/100). Used by the loyalty policy. Discounts above
// 100 percent are rejected rather than producing a negative price.
func (m Money) ApplyDiscount(percent decimal.Decimal) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if percent.GreaterThan(decimal.NewFromInt(100)) {
		return Money{}, errs.NewValueIsOutOfRangeError("discountPercent", percent.String(), 0, 100)
	}

	factor := decimal.NewFromInt(1).Sub(percent.Div(decimal.NewFromInt(100)))
	return NewMoney(m.amount.Mul(factor), m.currency)
}

// String renders the amount followed by its currency, e.g. "111.55 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount, m.currency)
}
