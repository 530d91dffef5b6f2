//go:build unit

package billing_test

import (
	"testing"
	"time"

	"smartpark/internal/domain/billing"
	"smartpark/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRounding(t *testing.T) {
	t.Run("money rounds half away from zero to cents", func(t *testing.T) {
		assert.InDelta(t, 2.35, billing.RoundMoney(2.345), 1e-9)
		assert.InDelta(t, 2.34, billing.RoundMoney(2.344), 1e-9)
		assert.InDelta(t, -2.35, billing.RoundMoney(-2.345), 1e-9)
		assert.InDelta(t, 0.0, billing.RoundMoney(0.004), 1e-9)
	})

	t.Run("quantities round to three decimals", func(t *testing.T) {
		assert.InDelta(t, 1.235, billing.RoundQuantity(1.2345), 1e-9)
		assert.InDelta(t, 9.999, billing.RoundQuantity(9.9991), 1e-9)
	})
}

func TestNewRates(t *testing.T) {
	t.Run("valid rates", func(t *testing.T) {
		rates, err := billing.NewRates(2.00, 0.40)
		require.NoError(t, err)
		assert.Equal(t, 2.00, rates.ParkingPerHour)
		assert.Equal(t, 0.40, rates.EnergyPerKWh)
	})

	t.Run("negative parking rate", func(t *testing.T) {
		_, err := billing.NewRates(-0.01, 0.40)
		assert.ErrorIs(t, err, billing.ErrNegativeRate)
	})

	t.Run("negative energy rate", func(t *testing.T) {
		_, err := billing.NewRates(2.00, -0.40)
		assert.ErrorIs(t, err, billing.ErrNegativeRate)
	})
}

func TestDiscounted(t *testing.T) {
	rates, err := billing.NewRates(2.00, 0.40)
	require.NoError(t, err)

	tenPct := user.NewDiscount(0.10)
	zero := user.NewDiscount(0)

	t.Run("base tier pays list price even with stored discounts", func(t *testing.T) {
		got := rates.Discounted(user.TierBase, &tenPct, &tenPct)
		assert.Equal(t, rates, got)
	})

	t.Run("premium parking discount only", func(t *testing.T) {
		got := rates.Discounted(user.TierPremium, &tenPct, nil)
		assert.InDelta(t, 1.80, got.ParkingPerHour, 1e-9)
		assert.InDelta(t, 0.40, got.EnergyPerKWh, 1e-9)
	})

	t.Run("premium with both discounts", func(t *testing.T) {
		half := user.NewDiscount(0.5)
		got := rates.Discounted(user.TierPremium, &half, &half)
		assert.InDelta(t, 1.00, got.ParkingPerHour, 1e-9)
		assert.InDelta(t, 0.20, got.EnergyPerKWh, 1e-9)
	})

	t.Run("zero fraction leaves rate untouched", func(t *testing.T) {
		got := rates.Discounted(user.TierPremium, &zero, &zero)
		assert.Equal(t, rates, got)
	})
}

func TestCompute(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rates, err := billing.NewRates(2.00, 0.40)
	require.NoError(t, err)

	t.Run("ninety minutes with ten kWh", func(t *testing.T) {
		now := start.Add(90 * time.Minute)
		inv := billing.Compute(start, now, 10, rates)

		assert.Equal(t, 90, inv.TotalMinutes)
		assert.InDelta(t, 1.5, inv.TotalHours, 1e-9)
		assert.InDelta(t, 3.00, inv.ParkingCost, 1e-9)
		assert.InDelta(t, 4.00, inv.EnergyCost, 1e-9)
		assert.InDelta(t, 7.00, inv.Total, 1e-9)
	})

	t.Run("premium parking discount lowers the parking line", func(t *testing.T) {
		tenPct := user.NewDiscount(0.10)
		effective := rates.Discounted(user.TierPremium, &tenPct, nil)

		now := start.Add(90 * time.Minute)
		inv := billing.Compute(start, now, 10, effective)

		assert.InDelta(t, 2.70, inv.ParkingCost, 1e-9)
		assert.InDelta(t, 4.00, inv.EnergyCost, 1e-9)
		assert.InDelta(t, 6.70, inv.Total, 1e-9)
	})

	t.Run("partial minutes truncate", func(t *testing.T) {
		now := start.Add(90*time.Minute + 59*time.Second)
		inv := billing.Compute(start, now, 0, rates)
		assert.Equal(t, 90, inv.TotalMinutes)
	})

	t.Run("settlement before start bills zero time", func(t *testing.T) {
		inv := billing.Compute(start, start.Add(-time.Minute), 0, rates)
		assert.Equal(t, 0, inv.TotalMinutes)
		assert.InDelta(t, 0.0, inv.Total, 1e-9)
	})

	t.Run("energy quantity rounds to three decimals", func(t *testing.T) {
		now := start.Add(time.Hour)
		inv := billing.Compute(start, now, 10.12345, rates)
		assert.InDelta(t, 10.123, inv.EnergyKWh, 1e-9)
	})
}

func TestLines(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rates, err := billing.NewRates(2.00, 0.40)
	require.NoError(t, err)

	t.Run("parking and charging lines", func(t *testing.T) {
		inv := billing.Compute(start, start.Add(90*time.Minute), 10, rates)
		lines := inv.Lines()
		require.Len(t, lines, 2)

		assert.Equal(t, billing.LineParking, lines[0].Type)
		assert.InDelta(t, 1.5, lines[0].Quantity, 1e-9)
		assert.InDelta(t, 2.00, lines[0].UnitPrice, 1e-9)
		assert.InDelta(t, 3.00, lines[0].Total, 1e-9)

		assert.Equal(t, billing.LineCharging, lines[1].Type)
		assert.InDelta(t, 10.0, lines[1].Quantity, 1e-9)
		assert.InDelta(t, 0.40, lines[1].UnitPrice, 1e-9)
		assert.InDelta(t, 4.00, lines[1].Total, 1e-9)
	})

	t.Run("no charging line without energy", func(t *testing.T) {
		inv := billing.Compute(start, start.Add(time.Hour), 0, rates)
		lines := inv.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, billing.LineParking, lines[0].Type)
	})

	t.Run("no charging line when energy is free", func(t *testing.T) {
		free, err := billing.NewRates(2.00, 0)
		require.NoError(t, err)
		inv := billing.Compute(start, start.Add(time.Hour), 5, free)
		require.Len(t, inv.Lines(), 1)
	})

	t.Run("zero duration session still gets a parking line", func(t *testing.T) {
		inv := billing.Compute(start, start, 0, rates)
		lines := inv.Lines()
		require.Len(t, lines, 1)
		assert.InDelta(t, 0.0, lines[0].Total, 1e-9)
	})
}
