package charging

import (
	"time"

	"smartpark/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTargetSoC   = errs.New("target state of charge must be between 1 and 100")
	ErrInvalidInitialSoC  = errs.New("initial state of charge must be between 0 and 100")
	ErrInvalidTransition  = errs.New("illegal charge state transition")
	ErrInvalidMeasurement = errs.New("invalid charge measurement")
)

// Estimate is the informational wait/completion projection handed to the
// user at proposal time: 30 minutes per car already ahead in line, plus
// a fixed 60 minute service slot for the new charge.
type Estimate struct {
	WaitMinutes       int
	CompletionMinutes int
}

func EstimateFor(queuedJobs int, jobRunning bool) Estimate {
	carsBefore := queuedJobs
	if jobRunning {
		carsBefore++
	}
	wait := carsBefore * 30
	return Estimate{
		WaitMinutes:       wait,
		CompletionMinutes: wait + 60,
	}
}

// ChargeRequest is a user's ask to charge their car during an open
// parking session. At most one unresolved request may exist per session.
type ChargeRequest struct {
	id               uuid.UUID
	sessionID        uuid.UUID
	targetSoC        int
	initialSoC       *int
	requestedAt      time.Time
	status           RequestStatus
	estWaitMin       *int
	estCompletionMin *int
}

func NewChargeRequest(sessionID uuid.UUID, targetSoC int, initialSoC *int, est Estimate, now time.Time) (*ChargeRequest, error) {
	if targetSoC < 1 || targetSoC > 100 {
		return nil, ErrInvalidTargetSoC
	}
	if initialSoC != nil && (*initialSoC < 0 || *initialSoC > 100) {
		return nil, ErrInvalidInitialSoC
	}
	wait := est.WaitMinutes
	completion := est.CompletionMinutes
	return &ChargeRequest{
		id:               uuid.New(),
		sessionID:        sessionID,
		targetSoC:        targetSoC,
		initialSoC:       initialSoC,
		requestedAt:      now,
		status:           RequestProposed,
		estWaitMin:       &wait,
		estCompletionMin: &completion,
	}, nil
}

func ReconstructChargeRequest(id, sessionID uuid.UUID, targetSoC int, initialSoC *int, requestedAt time.Time, status RequestStatus, estWaitMin, estCompletionMin *int) *ChargeRequest {
	return &ChargeRequest{
		id:               id,
		sessionID:        sessionID,
		targetSoC:        targetSoC,
		initialSoC:       initialSoC,
		requestedAt:      requestedAt,
		status:           status,
		estWaitMin:       estWaitMin,
		estCompletionMin: estCompletionMin,
	}
}

func (r *ChargeRequest) ID() uuid.UUID              { return r.id }
func (r *ChargeRequest) SessionID() uuid.UUID       { return r.sessionID }
func (r *ChargeRequest) TargetSoC() int             { return r.targetSoC }
func (r *ChargeRequest) InitialSoC() *int           { return r.initialSoC }
func (r *ChargeRequest) RequestedAt() time.Time     { return r.requestedAt }
func (r *ChargeRequest) Status() RequestStatus      { return r.status }
func (r *ChargeRequest) EstWaitMinutes() *int       { return r.estWaitMin }
func (r *ChargeRequest) EstCompletionMinutes() *int { return r.estCompletionMin }

// Accept confirms the proposal; the caller then queues a job for it.
func (r *ChargeRequest) Accept() error {
	if r.status != RequestProposed {
		return ErrInvalidTransition
	}
	r.status = RequestPending
	return nil
}

// Reject declines the proposal. No job is ever created for a rejected
// request.
func (r *ChargeRequest) Reject() error {
	if r.status != RequestProposed {
		return ErrInvalidTransition
	}
	r.status = RequestCancelled
	return nil
}

// MarkInProgress follows the request's job being started.
func (r *ChargeRequest) MarkInProgress() error {
	if r.status != RequestPending {
		return ErrInvalidTransition
	}
	r.status = RequestInProgress
	return nil
}

// Complete follows the request's job finishing.
func (r *ChargeRequest) Complete() error {
	if r.status != RequestInProgress {
		return ErrInvalidTransition
	}
	r.status = RequestCompleted
	return nil
}

// Cancel resolves the request from any unresolved state, as happens on
// job abort or checkout cascade. Cancelling a terminal request is
// rejected so cascades stay idempotence-safe at the call site.
func (r *ChargeRequest) Cancel() error {
	if !r.status.Unresolved() {
		return ErrInvalidTransition
	}
	r.status = RequestCancelled
	return nil
}
