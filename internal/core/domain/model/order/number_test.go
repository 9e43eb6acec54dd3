package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"freight/internal/pkg/errs"
)

func TestFormatOrderNumber(t *testing.T) {
	t.Run("should pad the sequence to three digits", func(t *testing.T) {
		assert.Equal(t, "ORD-2025-001", FormatOrderNumber(2025, 1))
		assert.Equal(t, "ORD-2025-042", FormatOrderNumber(2025, 42))
	})

	t.Run("should not truncate sequences beyond three digits", func(t *testing.T) {
		assert.Equal(t, "ORD-2025-1042", FormatOrderNumber(2025, 1042))
	})
}

func TestValidateOrderNumber(t *testing.T) {
	t.Run("should accept formatted numbers", func(t *testing.T) {
		assert.NoError(t, ValidateOrderNumber("ORD-2025-001"))
		assert.NoError(t, ValidateOrderNumber("ORD-2026-1042"))
	})

	t.Run("should reject malformed numbers", func(t *testing.T) {
		numbers := []string{
			"",
			"ORD-2025-1",
			"ORD-25-001",
			"ord-2025-001",
			"ORDER-2025-001",
			"ORD-2025-001-extra",
		}

		for _, number := range numbers {
			err := ValidateOrderNumber(number)

			assert.Error(t, err, number)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, number)
		}
	})
}
