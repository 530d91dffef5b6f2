//go:build unit

package user_test

import (
	"testing"

	"smartpark/internal/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestDiscount(t *testing.T) {
	t.Run("clamps out of range fractions", func(t *testing.T) {
		assert.Equal(t, 0.0, user.NewDiscount(-0.5).Fraction())
		assert.Equal(t, 1.0, user.NewDiscount(1.5).Fraction())
		assert.Equal(t, 0.25, user.NewDiscount(0.25).Fraction())
	})

	t.Run("apply reduces the rate", func(t *testing.T) {
		assert.InDelta(t, 1.80, user.NewDiscount(0.10).Apply(2.00), 1e-9)
		assert.InDelta(t, 0.0, user.NewDiscount(1).Apply(2.00), 1e-9)
		assert.InDelta(t, 2.00, user.NewDiscount(0).Apply(2.00), 1e-9)
	})

	t.Run("ptr constructor passes nil through", func(t *testing.T) {
		assert.Nil(t, user.NewDiscountPtr(nil))
		f := 0.3
		d := user.NewDiscountPtr(&f)
		assert.NotNil(t, d)
		assert.Equal(t, 0.3, d.Fraction())
	})
}

func TestRoleAndTier(t *testing.T) {
	t.Run("known roles", func(t *testing.T) {
		for _, v := range []string{"driver", "admin"} {
			role, err := user.NewRole(v)
			assert.NoError(t, err)
			assert.Equal(t, v, role.String())
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := user.NewRole("superuser")
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("known tiers", func(t *testing.T) {
		for _, v := range []string{"base", "premium"} {
			tier, err := user.NewTier(v)
			assert.NoError(t, err)
			assert.Equal(t, v, tier.String())
		}
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := user.NewTier("gold")
		assert.ErrorIs(t, err, user.ErrInvalidTier)
	})
}
