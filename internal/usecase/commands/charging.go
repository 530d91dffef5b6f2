package commands

import (
	"context"

	"smartpark/internal/domain/charging"
	"smartpark/internal/domain/session"
	"smartpark/internal/domain/user"
	"smartpark/internal/infra"
	"smartpark/internal/pkg/clock"
	"smartpark/internal/pkg/errs"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicateActiveRequest = errs.New("session already has an active charge request")
	ErrRequestNotFound        = errs.New("charge request not found")
	ErrJobNotFound            = errs.New("charge job not found")
	ErrBotBusy                = errs.New("charging bot is busy")
	ErrNoQueuedJobs           = errs.New("no queued charge jobs")
)

type ProposeChargeRequest struct {
	TargetSoC  int
	InitialSoC *int
}

type ProposeChargeResult struct {
	RequestID            uuid.UUID
	EstWaitMinutes       int
	EstCompletionMinutes int
}

type FinishChargeRequest struct {
	EnergyKWh float64
	FinalSoC  int
}

type StartedJobResult struct {
	JobID     uuid.UUID
	RequestID uuid.UUID
	SpotID    uuid.UUID
}

type ChargingCommands interface {
	Propose(ctx context.Context, sessionID uuid.UUID, req ProposeChargeRequest, actorID uuid.UUID, actorRole string) (*ProposeChargeResult, error)
	Accept(ctx context.Context, requestID uuid.UUID, actorID uuid.UUID, actorRole string) (uuid.UUID, error)
	Reject(ctx context.Context, requestID uuid.UUID, actorID uuid.UUID, actorRole string) error
	StartNext(ctx context.Context) (*StartedJobResult, error)
	Start(ctx context.Context, jobID uuid.UUID) (*StartedJobResult, error)
	Finish(ctx context.Context, jobID uuid.UUID, req FinishChargeRequest) error
	Abort(ctx context.Context, jobID uuid.UUID) error
}

type chargingUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewChargingUseCase(uow shared.UnitOfWork, clk clock.Clock) ChargingCommands {
	return &chargingUseCaseImpl{uow: uow, clock: clk}
}

// Propose records a driver's charge request against an open session and
// hands back the queue estimate. The session row is locked so two
// concurrent proposals cannot both pass the single-active-request check.
func (uc *chargingUseCaseImpl) Propose(ctx context.Context, sessionID uuid.UUID, req ProposeChargeRequest, actorID uuid.UUID, actorRole string) (*ProposeChargeResult, error) {
	var result *ProposeChargeResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, derr := tx.Sessions().FindByIDForUpdate(ctx, tx.DB(), sessionID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrSessionNotFound)
			}
			return derr
		}
		if actorRole != user.RoleAdmin.String() && !s.OwnedBy(actorID) {
			return ErrSessionNotFound
		}
		if !s.IsOpen() {
			return ErrSessionAlreadyClosed
		}

		active, derr := tx.Requests().HasUnresolvedForSession(ctx, tx.DB(), sessionID)
		if derr != nil {
			return derr
		}
		if active {
			return ErrDuplicateActiveRequest
		}

		queued, derr := tx.Jobs().CountQueued(ctx, tx.DB())
		if derr != nil {
			return derr
		}
		running, derr := tx.Jobs().HasRunning(ctx, tx.DB())
		if derr != nil {
			return derr
		}
		est := charging.EstimateFor(queued, running)

		request, derr := charging.NewChargeRequest(sessionID, req.TargetSoC, req.InitialSoC, est, uc.clock.Now())
		if derr != nil {
			return derr
		}
		id, derr := tx.Requests().Create(ctx, tx.DB(), request)
		if derr != nil {
			return derr
		}

		result = &ProposeChargeResult{
			RequestID:            id,
			EstWaitMinutes:       est.WaitMinutes,
			EstCompletionMinutes: est.CompletionMinutes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Accept is the session holder confirming their own proposal: the
// request becomes pending and its job is queued. The owning session
// must still be open.
func (uc *chargingUseCaseImpl) Accept(ctx context.Context, requestID uuid.UUID, actorID uuid.UUID, actorRole string) (uuid.UUID, error) {
	var jobID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		request, s, derr := uc.lockOwnedRequest(ctx, tx, requestID, actorID, actorRole)
		if derr != nil {
			return derr
		}
		if !s.IsOpen() {
			return ErrSessionAlreadyClosed
		}
		if derr := request.Accept(); derr != nil {
			return derr
		}
		if derr := tx.Requests().Update(ctx, tx.DB(), request); derr != nil {
			return derr
		}

		job := charging.NewChargeJob(request.ID())
		id, derr := tx.Jobs().Create(ctx, tx.DB(), job)
		if derr != nil {
			return derr
		}
		jobID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return jobID, nil
}

// Reject is the session holder declining their own proposal.
func (uc *chargingUseCaseImpl) Reject(ctx context.Context, requestID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		request, _, derr := uc.lockOwnedRequest(ctx, tx, requestID, actorID, actorRole)
		if derr != nil {
			return derr
		}
		if derr := request.Reject(); derr != nil {
			return derr
		}
		return tx.Requests().Update(ctx, tx.DB(), request)
	})
}

// StartNext dispatches the bot to the head of the queue: oldest request
// first. The bot acquisition is a conditional update, so a busy bot
// fails the whole transaction without touching the job.
func (uc *chargingUseCaseImpl) StartNext(ctx context.Context) (*StartedJobResult, error) {
	var result *StartedJobResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		next, derr := tx.Jobs().NextQueued(ctx, tx.DB())
		if derr != nil {
			return derr
		}
		if next == nil {
			return ErrNoQueuedJobs
		}
		res, derr := uc.startJob(ctx, tx, next.Job, next.SpotID)
		if derr != nil {
			return derr
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Start dispatches the bot to one specific queued job, bypassing queue
// order. Used by operators to prioritize a charge.
func (uc *chargingUseCaseImpl) Start(ctx context.Context, jobID uuid.UUID) (*StartedJobResult, error) {
	var result *StartedJobResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		job, derr := uc.lockJob(ctx, tx, jobID)
		if derr != nil {
			return derr
		}
		spotID, derr := tx.Jobs().SpotForJob(ctx, tx.DB(), jobID)
		if derr != nil {
			return derr
		}
		res, derr := uc.startJob(ctx, tx, job, spotID)
		if derr != nil {
			return derr
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *chargingUseCaseImpl) startJob(ctx context.Context, tx shared.Tx, job *charging.ChargeJob, spotID uuid.UUID) (*StartedJobResult, error) {
	now := uc.clock.Now()

	acquired, err := tx.Bot().TryAcquire(ctx, tx.DB(), spotID, now)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrBotBusy
	}

	if err := job.Start(now); err != nil {
		return nil, err
	}
	if err := tx.Jobs().Update(ctx, tx.DB(), job); err != nil {
		return nil, err
	}

	request, err := uc.lockRequest(ctx, tx, job.RequestID())
	if err != nil {
		return nil, err
	}
	if err := request.MarkInProgress(); err != nil {
		return nil, err
	}
	if err := tx.Requests().Update(ctx, tx.DB(), request); err != nil {
		return nil, err
	}

	return &StartedJobResult{
		JobID:     job.ID(),
		RequestID: request.ID(),
		SpotID:    spotID,
	}, nil
}

// Finish records the measurements of a completed charge, resolves the
// request and frees the bot.
func (uc *chargingUseCaseImpl) Finish(ctx context.Context, jobID uuid.UUID, req FinishChargeRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		job, derr := uc.lockJob(ctx, tx, jobID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		if derr := job.Finish(now, req.EnergyKWh, req.FinalSoC); derr != nil {
			return derr
		}
		if derr := tx.Jobs().Update(ctx, tx.DB(), job); derr != nil {
			return derr
		}

		request, derr := uc.lockRequest(ctx, tx, job.RequestID())
		if derr != nil {
			return derr
		}
		if derr := request.Complete(); derr != nil {
			return derr
		}
		if derr := tx.Requests().Update(ctx, tx.DB(), request); derr != nil {
			return derr
		}

		return tx.Bot().Release(ctx, tx.DB(), now)
	})
}

// Abort terminates a queued or running job and cancels its request. The
// bot is released only when the job actually held it.
func (uc *chargingUseCaseImpl) Abort(ctx context.Context, jobID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		job, derr := uc.lockJob(ctx, tx, jobID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		wasRunning := job.Status() == charging.JobRunning
		if derr := job.Abort(now); derr != nil {
			return derr
		}
		if derr := tx.Jobs().Update(ctx, tx.DB(), job); derr != nil {
			return derr
		}

		request, derr := uc.lockRequest(ctx, tx, job.RequestID())
		if derr != nil {
			return derr
		}
		if derr := request.Cancel(); derr != nil {
			return derr
		}
		if derr := tx.Requests().Update(ctx, tx.DB(), request); derr != nil {
			return derr
		}

		if wasRunning {
			return tx.Bot().Release(ctx, tx.DB(), now)
		}
		return nil
	})
}

// lockOwnedRequest locks a request together with its session and hides
// requests of other users behind not-found. A deadlock against the
// checkout path (which locks session first) aborts the transaction and
// the unit of work retries it.
func (uc *chargingUseCaseImpl) lockOwnedRequest(ctx context.Context, tx shared.Tx, id uuid.UUID, actorID uuid.UUID, actorRole string) (*charging.ChargeRequest, *session.ParkingSession, error) {
	request, err := uc.lockRequest(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	s, err := tx.Sessions().FindByIDForUpdate(ctx, tx.DB(), request.SessionID())
	if err != nil {
		return nil, nil, err
	}
	if actorRole != user.RoleAdmin.String() && !s.OwnedBy(actorID) {
		return nil, nil, ErrRequestNotFound
	}
	return request, s, nil
}

func (uc *chargingUseCaseImpl) lockRequest(ctx context.Context, tx shared.Tx, id uuid.UUID) (*charging.ChargeRequest, error) {
	request, err := tx.Requests().FindByIDForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		return nil, err
	}
	return request, nil
}

func (uc *chargingUseCaseImpl) lockJob(ctx context.Context, tx shared.Tx, id uuid.UUID) (*charging.ChargeJob, error) {
	job, err := tx.Jobs().FindByIDForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrJobNotFound)
		}
		return nil, err
	}
	return job, nil
}
