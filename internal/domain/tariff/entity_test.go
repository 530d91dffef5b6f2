//go:build unit

package tariff_test

import (
	"testing"
	"time"

	"smartpark/internal/domain/billing"
	"smartpark/internal/domain/tariff"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRates(t *testing.T, parking, energy float64) billing.Rates {
	t.Helper()
	rates, err := billing.NewRates(parking, energy)
	require.NoError(t, err)
	return rates
}

func TestTariffCovers(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	open := tariff.NewTariff(mustRates(t, 2.00, 0.40), from)
	bounded, err := tariff.ReconstructTariff(uuid.New(), mustRates(t, 2.00, 0.40), from, &to)
	require.NoError(t, err)

	assert.False(t, open.Covers(from.Add(-time.Second)))
	assert.True(t, open.Covers(from))
	assert.True(t, open.Covers(from.Add(365*24*time.Hour)))

	assert.True(t, bounded.Covers(to))
	assert.False(t, bounded.Covers(to.Add(time.Second)))
}

func TestReconstructTariff(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := from.Add(-time.Hour)

	_, err := tariff.ReconstructTariff(uuid.New(), mustRates(t, 1, 1), from, &before)
	assert.ErrorIs(t, err, tariff.ErrInvalidWindow)
}

func TestCloseBefore(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	successorFrom := from.Add(48 * time.Hour)

	current := tariff.NewTariff(mustRates(t, 2.00, 0.40), from)
	current.CloseBefore(successorFrom)

	require.NotNil(t, current.ValidTo())
	assert.Equal(t, successorFrom.Add(-time.Second), *current.ValidTo())
	assert.True(t, current.Covers(successorFrom.Add(-time.Second)))
	assert.False(t, current.Covers(successorFrom))
}

func TestResolve(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	older := tariff.NewTariff(mustRates(t, 1.00, 0.20), base)
	newer := tariff.NewTariff(mustRates(t, 2.00, 0.40), base.Add(24*time.Hour))

	t.Run("latest applicable tariff wins on overlap", func(t *testing.T) {
		got := tariff.Resolve([]*tariff.Tariff{older, newer}, base.Add(36*time.Hour))
		require.NotNil(t, got)
		assert.Equal(t, newer.ID(), got.ID())
	})

	t.Run("instant before the newer tariff resolves to the older one", func(t *testing.T) {
		got := tariff.Resolve([]*tariff.Tariff{older, newer}, base.Add(time.Hour))
		require.NotNil(t, got)
		assert.Equal(t, older.ID(), got.ID())
	})

	t.Run("no coverage yields nil", func(t *testing.T) {
		assert.Nil(t, tariff.Resolve([]*tariff.Tariff{older, newer}, base.Add(-time.Second)))
		assert.Nil(t, tariff.Resolve(nil, base))
	})
}
