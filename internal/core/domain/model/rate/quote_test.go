package rate_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/rate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPrice(t *testing.T) kernel.Money {
	t.Helper()
	price, err := kernel.NewMoney(decimal.NewFromInt(100), "USD")
	require.NoError(t, err)
	return price
}

func TestNewRateQuote(t *testing.T) {
	id := kernel.NewUUID()
	agentID := kernel.NewUUID()
	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	validTo := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("should create active quote with all valid parameters", func(t *testing.T) {
		q, err := rate.NewRateQuote(id, agentID, "Shanghai", "Hamburg",
			kernel.ServiceTypeFreight, "40HC", validPrice(t), validFrom, validTo)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.True(t, q.ID().IsEqual(id))
		assert.True(t, q.AgentID().IsEqual(agentID))
		assert.Equal(t, "Shanghai", q.Origin())
		assert.Equal(t, "Hamburg", q.Destination())
		assert.Equal(t, kernel.ServiceTypeFreight, q.ServiceType())
		assert.Equal(t, "40HC", q.ContainerType())
		assert.True(t, q.IsActive())
	})

	t.Run("should trim route endpoints", func(t *testing.T) {
		q, err := rate.NewRateQuote(id, agentID, "  Shanghai ", " Hamburg ",
			kernel.ServiceTypeFreight, "", validPrice(t), validFrom, validTo)

		require.NoError(t, err)
		assert.Equal(t, "Shanghai", q.Origin())
		assert.Equal(t, "Hamburg", q.Destination())
	})

	t.Run("should fail with empty origin", func(t *testing.T) {
		_, err := rate.NewRateQuote(id, agentID, "", "Hamburg",
			kernel.ServiceTypeFreight, "", validPrice(t), validFrom, validTo)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "origin")
	})

	t.Run("should fail with empty destination", func(t *testing.T) {
		_, err := rate.NewRateQuote(id, agentID, "Shanghai", "   ",
			kernel.ServiceTypeFreight, "", validPrice(t), validFrom, validTo)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "destination")
	})

	t.Run("should fail with invalid service type", func(t *testing.T) {
		_, err := rate.NewRateQuote(id, agentID, "Shanghai", "Hamburg",
			kernel.ServiceTypeUnknown, "", validPrice(t), validFrom, validTo)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "serviceType")
	})

	t.Run("should fail with unconstructed price", func(t *testing.T) {
		var price kernel.Money

		_, err := rate.NewRateQuote(id, agentID, "Shanghai", "Hamburg",
			kernel.ServiceTypeFreight, "", price, validFrom, validTo)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "money must be created")
	})

	t.Run("should fail when validFrom is after validTo", func(t *testing.T) {
		_, err := rate.NewRateQuote(id, agentID, "Shanghai", "Hamburg",
			kernel.ServiceTypeFreight, "", validPrice(t), validTo, validFrom)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validity")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		var price kernel.Money

		_, err := rate.NewRateQuote(invalidID, agentID, "", "Hamburg",
			kernel.ServiceTypeUnknown, "", price, validFrom, validTo)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "origin")
		assert.Contains(t, err.Error(), "serviceType")
	})
}

func TestRateQuote_Validate(t *testing.T) {
	t.Run("should fail validation for nil quote", func(t *testing.T) {
		var q *rate.RateQuote

		err := q.Validate()

		require.Error(t, err)
		assert.Equal(t, rate.ErrRateQuoteIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		q := &rate.RateQuote{}

		require.Error(t, q.Validate())
	})
}

func TestRateQuote_IsEffectiveAt(t *testing.T) {
	id := kernel.NewUUID()
	agentID := kernel.NewUUID()
	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	validTo := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	newQuote := func(t *testing.T) *rate.RateQuote {
		t.Helper()
		q, err := rate.NewRateQuote(id, agentID, "Shanghai", "Hamburg",
			kernel.ServiceTypeFreight, "", validPrice(t), validFrom, validTo)
		require.NoError(t, err)
		return q
	}

	t.Run("should be effective inside the validity range", func(t *testing.T) {
		q := newQuote(t)

		assert.True(t, q.IsEffectiveAt(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("should be effective on both boundary dates", func(t *testing.T) {
		q := newQuote(t)

		assert.True(t, q.IsEffectiveAt(validFrom))
		assert.True(t, q.IsEffectiveAt(validTo))
		// Late on the last day still counts: comparison is date-granular.
		assert.True(t, q.IsEffectiveAt(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
	})

	t.Run("should not be effective outside the validity range", func(t *testing.T) {
		q := newQuote(t)

		assert.False(t, q.IsEffectiveAt(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
		assert.False(t, q.IsEffectiveAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("should not be effective after deactivation", func(t *testing.T) {
		q := newQuote(t)

		q.Deactivate()

		assert.False(t, q.IsActive())
		assert.False(t, q.IsEffectiveAt(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	})
}

func TestRateQuote_MatchesRoute(t *testing.T) {
	q, err := rate.NewRateQuote(kernel.NewUUID(), kernel.NewUUID(), "Shanghai", "Hamburg",
		kernel.ServiceTypeFreight, "", validPrice(t),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	t.Run("should match case-insensitively", func(t *testing.T) {
		assert.True(t, q.MatchesRoute("shanghai", "HAMBURG"))
		assert.True(t, q.MatchesRoute(" Shanghai ", "hamburg"))
	})

	t.Run("should not match a different route", func(t *testing.T) {
		assert.False(t, q.MatchesRoute("Shanghai", "Rotterdam"))
		assert.False(t, q.MatchesRoute("Hamburg", "Shanghai"))
	})
}
