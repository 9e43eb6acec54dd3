package margin_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/margin"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsFor(t *testing.T) {
	t.Run("should define bounds for every service type", func(t *testing.T) {
		for _, st := range []kernel.ServiceType{
			kernel.ServiceTypeFreight,
			kernel.ServiceTypeRailway,
			kernel.ServiceTypeAuto,
			kernel.ServiceTypeContainerRental,
		} {
			bounds := margin.BoundsFor(st)

			assert.True(t, bounds.Min.LessThan(bounds.Max), "bounds for %s are inverted", st)
			assert.True(t, bounds.Min.GreaterThanOrEqual(decimal.Zero))
		}
	})

	t.Run("should treat bounds as inclusive", func(t *testing.T) {
		bounds := margin.BoundsFor(kernel.ServiceTypeFreight)

		assert.True(t, bounds.Contains(bounds.Min))
		assert.True(t, bounds.Contains(bounds.Max))
		assert.False(t, bounds.Contains(bounds.Min.Sub(decimal.NewFromFloat(0.01))))
		assert.False(t, bounds.Contains(bounds.Max.Add(decimal.NewFromFloat(0.01))))
	})
}

func TestNewRule(t *testing.T) {
	id := kernel.NewUUID()
	agentID := kernel.NewUUID()

	t.Run("should create active rule within bounds", func(t *testing.T) {
		rule, err := margin.NewRule(id, agentID, kernel.ServiceTypeFreight, decimal.NewFromInt(15))

		require.NoError(t, err)
		require.NoError(t, rule.Validate())
		assert.True(t, rule.AgentID().IsEqual(agentID))
		assert.Equal(t, kernel.ServiceTypeFreight, rule.ServiceType())
		assert.True(t, rule.MarginPercent().Equal(decimal.NewFromInt(15)))
		assert.True(t, rule.IsActive())
	})

	t.Run("should fail below the lower bound", func(t *testing.T) {
		_, err := margin.NewRule(id, agentID, kernel.ServiceTypeFreight, decimal.NewFromInt(2))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail above the upper bound", func(t *testing.T) {
		_, err := margin.NewRule(id, agentID, kernel.ServiceTypeFreight, decimal.NewFromInt(41))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with invalid service type", func(t *testing.T) {
		_, err := margin.NewRule(id, agentID, kernel.ServiceTypeUnknown, decimal.NewFromInt(15))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "serviceType")
	})

	t.Run("should fail with unconstructed agent id", func(t *testing.T) {
		var invalidAgent kernel.UUID

		_, err := margin.NewRule(id, invalidAgent, kernel.ServiceTypeFreight, decimal.NewFromInt(15))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "agentId")
	})
}

func TestRule_ChangePercent(t *testing.T) {
	t.Run("should accept a percentage within bounds", func(t *testing.T) {
		rule, _ := margin.NewRule(kernel.NewUUID(), kernel.NewUUID(),
			kernel.ServiceTypeRailway, decimal.NewFromInt(10))

		require.NoError(t, rule.ChangePercent(decimal.NewFromInt(20)))
		assert.True(t, rule.MarginPercent().Equal(decimal.NewFromInt(20)))
	})

	t.Run("should reject a percentage outside bounds and keep the old value", func(t *testing.T) {
		rule, _ := margin.NewRule(kernel.NewUUID(), kernel.NewUUID(),
			kernel.ServiceTypeRailway, decimal.NewFromInt(10))

		err := rule.ChangePercent(decimal.NewFromInt(90))

		require.Error(t, err)
		assert.True(t, rule.MarginPercent().Equal(decimal.NewFromInt(10)))
	})
}

func TestRule_Apply(t *testing.T) {
	t.Run("should apply the markup to a raw price", func(t *testing.T) {
		rule, _ := margin.NewRule(kernel.NewUUID(), kernel.NewUUID(),
			kernel.ServiceTypeFreight, decimal.NewFromInt(15))
		raw, _ := kernel.NewMoney(decimal.NewFromInt(100), "USD")

		margined, err := rule.Apply(raw)

		require.NoError(t, err)
		assert.True(t, margined.Amount().Equal(decimal.NewFromInt(115)),
			"got %s", margined.Amount())
	})

	t.Run("should fail for an unconstructed rule", func(t *testing.T) {
		var rule *margin.Rule
		raw, _ := kernel.NewMoney(decimal.NewFromInt(100), "USD")

		_, err := rule.Apply(raw)

		require.Error(t, err)
		assert.Equal(t, margin.ErrRuleIsNotConstructed, err)
	})
}

func TestRule_Deactivate(t *testing.T) {
	t.Run("should mark the rule inactive", func(t *testing.T) {
		rule, _ := margin.NewRule(kernel.NewUUID(), kernel.NewUUID(),
			kernel.ServiceTypeAuto, decimal.NewFromInt(10))

		rule.Deactivate()

		assert.False(t, rule.IsActive())
	})
}
