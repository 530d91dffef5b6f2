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

func TestEstimateFor(t *testing.T) {
	tests := []struct {
		name           string
		queued         int
		running        bool
		wantWait       int
		wantCompletion int
	}{
		{name: "empty queue idle bot", queued: 0, running: false, wantWait: 0, wantCompletion: 60},
		{name: "empty queue busy bot", queued: 0, running: true, wantWait: 30, wantCompletion: 90},
		{name: "two queued idle bot", queued: 2, running: false, wantWait: 60, wantCompletion: 120},
		{name: "two queued busy bot", queued: 2, running: true, wantWait: 90, wantCompletion: 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := charging.EstimateFor(tt.queued, tt.running)
			assert.Equal(t, tt.wantWait, est.WaitMinutes)
			assert.Equal(t, tt.wantCompletion, est.CompletionMinutes)
		})
	}
}

func newProposed(t *testing.T) *charging.ChargeRequest {
	t.Helper()
	req, err := charging.NewChargeRequest(uuid.New(), 80, nil, charging.EstimateFor(0, false), time.Now().UTC())
	require.NoError(t, err)
	return req
}

func TestNewChargeRequest(t *testing.T) {
	now := time.Now().UTC()
	est := charging.EstimateFor(1, true)

	t.Run("valid request captures the estimate", func(t *testing.T) {
		initial := 20
		req, err := charging.NewChargeRequest(uuid.New(), 80, &initial, est, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, req.ID())
		assert.Equal(t, charging.RequestProposed, req.Status())
		assert.Equal(t, 80, req.TargetSoC())
		require.NotNil(t, req.EstWaitMinutes())
		assert.Equal(t, 60, *req.EstWaitMinutes())
		require.NotNil(t, req.EstCompletionMinutes())
		assert.Equal(t, 120, *req.EstCompletionMinutes())
	})

	t.Run("target state of charge bounds", func(t *testing.T) {
		for _, target := range []int{0, -1, 101} {
			_, err := charging.NewChargeRequest(uuid.New(), target, nil, est, now)
			assert.ErrorIs(t, err, charging.ErrInvalidTargetSoC)
		}
		for _, target := range []int{1, 100} {
			_, err := charging.NewChargeRequest(uuid.New(), target, nil, est, now)
			assert.NoError(t, err)
		}
	})

	t.Run("initial state of charge bounds", func(t *testing.T) {
		for _, initial := range []int{-1, 101} {
			v := initial
			_, err := charging.NewChargeRequest(uuid.New(), 80, &v, est, now)
			assert.ErrorIs(t, err, charging.ErrInvalidInitialSoC)
		}
		zero := 0
		_, err := charging.NewChargeRequest(uuid.New(), 80, &zero, est, now)
		assert.NoError(t, err)
	})
}

func TestChargeRequestTransitions(t *testing.T) {
	t.Run("accept then run to completion", func(t *testing.T) {
		req := newProposed(t)

		require.NoError(t, req.Accept())
		assert.Equal(t, charging.RequestPending, req.Status())

		require.NoError(t, req.MarkInProgress())
		assert.Equal(t, charging.RequestInProgress, req.Status())

		require.NoError(t, req.Complete())
		assert.Equal(t, charging.RequestCompleted, req.Status())
	})

	t.Run("reject resolves the proposal", func(t *testing.T) {
		req := newProposed(t)
		require.NoError(t, req.Reject())
		assert.Equal(t, charging.RequestCancelled, req.Status())
	})

	t.Run("cancel works from every unresolved state", func(t *testing.T) {
		advance := []func(*charging.ChargeRequest){
			func(*charging.ChargeRequest) {},
			func(r *charging.ChargeRequest) { _ = r.Accept() },
			func(r *charging.ChargeRequest) { _ = r.Accept(); _ = r.MarkInProgress() },
		}
		for _, step := range advance {
			req := newProposed(t)
			step(req)
			require.NoError(t, req.Cancel())
			assert.Equal(t, charging.RequestCancelled, req.Status())
		}
	})

	t.Run("illegal transitions are rejected", func(t *testing.T) {
		req := newProposed(t)

		assert.ErrorIs(t, req.MarkInProgress(), charging.ErrInvalidTransition)
		assert.ErrorIs(t, req.Complete(), charging.ErrInvalidTransition)

		require.NoError(t, req.Accept())
		assert.ErrorIs(t, req.Accept(), charging.ErrInvalidTransition)
		assert.ErrorIs(t, req.Reject(), charging.ErrInvalidTransition)
		assert.ErrorIs(t, req.Complete(), charging.ErrInvalidTransition)
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		req := newProposed(t)
		require.NoError(t, req.Reject())

		assert.ErrorIs(t, req.Accept(), charging.ErrInvalidTransition)
		assert.ErrorIs(t, req.Cancel(), charging.ErrInvalidTransition)
		assert.Equal(t, charging.RequestCancelled, req.Status())
	})
}
