package queries

import (
	"context"

	"smartpark/internal/domain/bot"
	"smartpark/internal/domain/user"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

type ChargingQueries interface {
	RequestsBySession(ctx context.Context, sessionID uuid.UUID, actorID uuid.UUID, actorRole string) ([]*ChargeRequestView, error)
	// BotStatus reports the bot together with its queue backlog and the
	// job it is currently serving, read in one consistent snapshot.
	BotStatus(ctx context.Context) (*BotStatusView, error)
	QueuedJobs(ctx context.Context) ([]*ChargeJobView, error)
	JobByID(ctx context.Context, id uuid.UUID) (*ChargeJobView, error)
}

type ChargeViewRepo interface {
	RequestsBySession(ctx context.Context, dbtx db.DBTX, sessionID uuid.UUID) ([]*ChargeRequestView, error)
	QueuedJobs(ctx context.Context, dbtx db.DBTX) ([]*ChargeJobView, error)
	RunningJob(ctx context.Context, dbtx db.DBTX) (*ChargeJobView, error)
	FindJobByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*ChargeJobView, error)
	CountQueued(ctx context.Context, dbtx db.DBTX) (int, error)
}

type BotRepo interface {
	Get(ctx context.Context, dbtx db.DBTX) (*bot.Bot, error)
}

type SessionOwnershipRepo interface {
	FindSnapshotByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.SessionSnapshot, error)
}

type chargingQueriesImpl struct {
	uow      shared.UnitOfWork
	charges  ChargeViewRepo
	bots     BotRepo
	sessions SessionOwnershipRepo
}

func NewChargingQueries(uow shared.UnitOfWork, charges ChargeViewRepo, bots BotRepo, sessions SessionOwnershipRepo) ChargingQueries {
	return &chargingQueriesImpl{
		uow:      uow,
		charges:  charges,
		bots:     bots,
		sessions: sessions,
	}
}

func (q *chargingQueriesImpl) RequestsBySession(ctx context.Context, sessionID uuid.UUID, actorID uuid.UUID, actorRole string) ([]*ChargeRequestView, error) {
	var views []*ChargeRequestView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		s, derr := q.sessions.FindSnapshotByID(ctx, dbtx, sessionID)
		if derr != nil {
			return derr
		}
		if actorRole != user.RoleAdmin.String() && s.UserID != actorID {
			return ErrSessionNotFound
		}
		views, derr = q.charges.RequestsBySession(ctx, dbtx, sessionID)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *chargingQueriesImpl) BotStatus(ctx context.Context) (*BotStatusView, error) {
	var view *BotStatusView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		b, derr := q.bots.Get(ctx, dbtx)
		if derr != nil {
			return derr
		}
		queued, derr := q.charges.CountQueued(ctx, dbtx)
		if derr != nil {
			return derr
		}
		running, derr := q.charges.RunningJob(ctx, dbtx)
		if derr != nil {
			return derr
		}

		view = &BotStatusView{
			CurrentSpotID:  b.CurrentSpotID(),
			BatteryPercent: b.BatteryPercent(),
			MaxPowerKW:     b.MaxPowerKW(),
			Busy:           b.Busy(),
			LastUpdate:     b.LastUpdate(),
			QueueLength:    queued,
			RunningJob:     running,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *chargingQueriesImpl) QueuedJobs(ctx context.Context) ([]*ChargeJobView, error) {
	var views []*ChargeJobView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var derr error
		views, derr = q.charges.QueuedJobs(ctx, dbtx)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *chargingQueriesImpl) JobByID(ctx context.Context, id uuid.UUID) (*ChargeJobView, error) {
	var view *ChargeJobView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var derr error
		view, derr = q.charges.FindJobByID(ctx, dbtx, id)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
