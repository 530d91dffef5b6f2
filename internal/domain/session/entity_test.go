//go:build unit

package session_test

import (
	"testing"
	"time"

	"smartpark/internal/domain/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParkingSession(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("new session is open with no totals", func(t *testing.T) {
		s := session.NewParkingSession(uuid.New(), uuid.New(), uuid.New(), start)
		assert.True(t, s.IsOpen())
		assert.Nil(t, s.EndUtc())
		assert.Nil(t, s.TotalMinutes())
		assert.Nil(t, s.ChargingMinutes())
	})

	t.Run("ownership check", func(t *testing.T) {
		owner := uuid.New()
		s := session.NewParkingSession(uuid.New(), uuid.New(), owner, start)
		assert.True(t, s.OwnedBy(owner))
		assert.False(t, s.OwnedBy(uuid.New()))
	})

	t.Run("close records the totals", func(t *testing.T) {
		s := session.NewParkingSession(uuid.New(), uuid.New(), uuid.New(), start)
		end := start.Add(90 * time.Minute)

		require.NoError(t, s.Close(end, 90, 45))
		assert.False(t, s.IsOpen())
		require.NotNil(t, s.EndUtc())
		assert.Equal(t, end, *s.EndUtc())
		require.NotNil(t, s.TotalMinutes())
		assert.Equal(t, 90, *s.TotalMinutes())
		require.NotNil(t, s.ChargingMinutes())
		assert.Equal(t, 45, *s.ChargingMinutes())
	})

	t.Run("negative totals are floored to zero", func(t *testing.T) {
		s := session.NewParkingSession(uuid.New(), uuid.New(), uuid.New(), start)
		require.NoError(t, s.Close(start, -5, -1))
		assert.Equal(t, 0, *s.TotalMinutes())
		assert.Equal(t, 0, *s.ChargingMinutes())
	})

	t.Run("closing twice fails", func(t *testing.T) {
		s := session.NewParkingSession(uuid.New(), uuid.New(), uuid.New(), start)
		require.NoError(t, s.Close(start.Add(time.Hour), 60, 0))
		assert.ErrorIs(t, s.Close(start.Add(2*time.Hour), 120, 0), session.ErrAlreadyClosed)
	})
}
