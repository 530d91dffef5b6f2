//go:build unit

package charging_test

import (
	"testing"
	"time"

	"smartpark/internal/domain/charging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeJob(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("new job starts queued with no timestamps", func(t *testing.T) {
		job := charging.NewChargeJob(uuid.New())
		assert.Equal(t, charging.JobQueued, job.Status())
		assert.Nil(t, job.StartUtc())
		assert.Nil(t, job.EndUtc())
		assert.Nil(t, job.EnergyKWh())
		assert.Nil(t, job.FinalSoC())
	})

	t.Run("start stamps the start time", func(t *testing.T) {
		job := charging.NewChargeJob(uuid.New())
		require.NoError(t, job.Start(now))
		assert.Equal(t, charging.JobRunning, job.Status())
		require.NotNil(t, job.StartUtc())
		assert.Equal(t, now, *job.StartUtc())
	})

	t.Run("finish records measurements", func(t *testing.T) {
		job := charging.NewChargeJob(uuid.New())
		require.NoError(t, job.Start(now))

		end := now.Add(45 * time.Minute)
		require.NoError(t, job.Finish(end, 12.5, 80))

		assert.Equal(t, charging.JobFinished, job.Status())
		require.NotNil(t, job.EndUtc())
		assert.Equal(t, end, *job.EndUtc())
		require.NotNil(t, job.EnergyKWh())
		assert.Equal(t, 12.5, *job.EnergyKWh())
		require.NotNil(t, job.FinalSoC())
		assert.Equal(t, 80, *job.FinalSoC())
	})

	t.Run("finish rejects bad measurements", func(t *testing.T) {
		cases := []struct {
			name   string
			energy float64
			soc    int
		}{
			{name: "negative energy", energy: -0.1, soc: 80},
			{name: "negative state of charge", energy: 5, soc: -1},
			{name: "state of charge above 100", energy: 5, soc: 101},
		}
		for _, tt := range cases {
			t.Run(tt.name, func(t *testing.T) {
				job := charging.NewChargeJob(uuid.New())
				require.NoError(t, job.Start(now))
				assert.ErrorIs(t, job.Finish(now.Add(time.Hour), tt.energy, tt.soc), charging.ErrInvalidMeasurement)
				assert.Equal(t, charging.JobRunning, job.Status())
			})
		}
	})

	t.Run("zero energy finish is allowed", func(t *testing.T) {
		job := charging.NewChargeJob(uuid.New())
		require.NoError(t, job.Start(now))
		require.NoError(t, job.Finish(now.Add(time.Minute), 0, 20))
	})

	t.Run("abort of a queued job leaves no end time", func(t *testing.T) {
		job := charging.NewChargeJob(uuid.New())
		require.NoError(t, job.Abort(now))
		assert.Equal(t, charging.JobAborted, job.Status())
		assert.Nil(t, job.EndUtc())
	})

	t.Run("abort of a running job stamps the end time", func(t *testing.T) {
		job := charging.NewChargeJob(uuid.New())
		require.NoError(t, job.Start(now))

		end := now.Add(10 * time.Minute)
		require.NoError(t, job.Abort(end))
		assert.Equal(t, charging.JobAborted, job.Status())
		require.NotNil(t, job.EndUtc())
		assert.Equal(t, end, *job.EndUtc())
	})

	t.Run("illegal transitions", func(t *testing.T) {
		job := charging.NewChargeJob(uuid.New())
		assert.ErrorIs(t, job.Finish(now, 1, 50), charging.ErrInvalidTransition)

		require.NoError(t, job.Start(now))
		assert.ErrorIs(t, job.Start(now), charging.ErrInvalidTransition)

		require.NoError(t, job.Finish(now.Add(time.Hour), 1, 50))
		assert.ErrorIs(t, job.Abort(now), charging.ErrInvalidTransition)
		assert.ErrorIs(t, job.Start(now), charging.ErrInvalidTransition)
	})
}
