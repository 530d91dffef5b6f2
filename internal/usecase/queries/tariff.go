package queries

import (
	"context"
	"time"

	"smartpark/internal/infra/db"
	"smartpark/internal/pkg/clock"
	"smartpark/internal/usecase/shared"
)

type TariffQueries interface {
	List(ctx context.Context) ([]*TariffView, error)
	Current(ctx context.Context) (*TariffView, error)
}

type TariffViewRepo interface {
	List(ctx context.Context, dbtx db.DBTX) ([]*TariffView, error)
	CurrentAt(ctx context.Context, dbtx db.DBTX, at time.Time) (*TariffView, error)
}

type tariffQueriesImpl struct {
	uow     shared.UnitOfWork
	tariffs TariffViewRepo
	clock   clock.Clock
}

func NewTariffQueries(uow shared.UnitOfWork, tariffs TariffViewRepo, clk clock.Clock) TariffQueries {
	return &tariffQueriesImpl{uow: uow, tariffs: tariffs, clock: clk}
}

func (q *tariffQueriesImpl) List(ctx context.Context) ([]*TariffView, error) {
	var views []*TariffView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var derr error
		views, derr = q.tariffs.List(ctx, dbtx)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *tariffQueriesImpl) Current(ctx context.Context) (*TariffView, error) {
	var view *TariffView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		v, derr := q.tariffs.CurrentAt(ctx, dbtx, q.clock.Now())
		if derr != nil {
			return derr
		}
		if v == nil {
			return ErrNoActiveTariff
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
