package guard_test

import (
	"errors"
	"testing"

	"freight/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard(t *testing.T) {
	t.Run("should pass validation when created via constructor", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("should not be returned")))
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var g guard.ConstructorGuard
		sentinel := errors.New("object is not constructed")

		err := g.Validate(sentinel)

		require.Error(t, err)
		assert.Equal(t, sentinel, err)
	})

	t.Run("should fall back to default error when nil is supplied", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}
