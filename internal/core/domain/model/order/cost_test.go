package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/kernel"
)

func mustMoney(t *testing.T, amount string, currency string) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return money
}

func TestNewCost(t *testing.T) {
	t.Run("should create valid cost snapshot", func(t *testing.T) {
		total := mustMoney(t, "111.55", "USD")
		rawPrice := mustMoney(t, "100", "USD")

		cost, err := NewCost(total, rawPrice, decimal.NewFromInt(15), decimal.NewFromInt(3))

		require.NoError(t, err)
		assert.NoError(t, cost.Validate())
		assert.True(t, cost.Total().IsEqual(total))
		assert.True(t, cost.RawPrice().IsEqual(rawPrice))
		assert.True(t, cost.MarginPercent().Equal(decimal.NewFromInt(15)))
		assert.True(t, cost.DiscountPercent().Equal(decimal.NewFromInt(3)))
	})

	t.Run("should return error for unconstructed money", func(t *testing.T) {
		_, err := NewCost(kernel.Money{}, mustMoney(t, "100", "USD"),
			decimal.Zero, decimal.Zero)

		assert.Error(t, err)
	})

	t.Run("should return error for currency mismatch", func(t *testing.T) {
		_, err := NewCost(mustMoney(t, "100", "EUR"), mustMoney(t, "100", "USD"),
			decimal.Zero, decimal.Zero)

		assert.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})

	t.Run("should return error for negative margin percent", func(t *testing.T) {
		_, err := NewCost(mustMoney(t, "100", "USD"), mustMoney(t, "100", "USD"),
			decimal.NewFromInt(-1), decimal.Zero)

		assert.Error(t, err)
	})

	t.Run("should return error for discount percent above hundred", func(t *testing.T) {
		_, err := NewCost(mustMoney(t, "100", "USD"), mustMoney(t, "100", "USD"),
			decimal.Zero, decimal.NewFromInt(101))

		assert.Error(t, err)
	})

	t.Run("should return error for empty cost", func(t *testing.T) {
		var cost Cost

		assert.ErrorIs(t, cost.Validate(), ErrCostIsNotConstructed)
	})
}
