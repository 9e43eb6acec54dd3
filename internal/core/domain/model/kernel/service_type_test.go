package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceType(t *testing.T) {
	t.Run("should parse all wire forms", func(t *testing.T) {
		expected := map[string]kernel.ServiceType{
			"freight":          kernel.ServiceTypeFreight,
			"railway":          kernel.ServiceTypeRailway,
			"auto":             kernel.ServiceTypeAuto,
			"container_rental": kernel.ServiceTypeContainerRental,
		}

		for wire, st := range expected {
			parsed, err := kernel.ParseServiceType(wire)

			require.NoError(t, err, "failed to parse %q", wire)
			assert.Equal(t, st, parsed)
		}
	})

	t.Run("should fail for unknown value", func(t *testing.T) {
		_, err := kernel.ParseServiceType("teleport")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid service type")
	})

	t.Run("should fail for empty value", func(t *testing.T) {
		_, err := kernel.ParseServiceType("")

		require.Error(t, err)
	})
}

func TestServiceType_Validate(t *testing.T) {
	t.Run("should pass for valid service types", func(t *testing.T) {
		for _, st := range []kernel.ServiceType{
			kernel.ServiceTypeFreight,
			kernel.ServiceTypeRailway,
			kernel.ServiceTypeAuto,
			kernel.ServiceTypeContainerRental,
		} {
			assert.NoError(t, st.Validate())
		}
	})

	t.Run("should fail for unknown and out-of-range values", func(t *testing.T) {
		assert.Error(t, kernel.ServiceTypeUnknown.Validate())
		assert.Error(t, kernel.ServiceType(99).Validate())
	})
}

func TestServiceType_String(t *testing.T) {
	t.Run("should round-trip through the wire form", func(t *testing.T) {
		st, err := kernel.ParseServiceType(kernel.ServiceTypeRailway.String())

		require.NoError(t, err)
		assert.Equal(t, kernel.ServiceTypeRailway, st)
	})

	t.Run("should render unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "unknown", kernel.ServiceType(42).String())
	})
}
