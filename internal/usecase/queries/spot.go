package queries

import (
	"context"

	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/shared"
)

type SpotQueries interface {
	ListFree(ctx context.Context) ([]*SpotView, error)
}

type SpotViewRepo interface {
	ListFree(ctx context.Context, dbtx db.DBTX) ([]*SpotView, error)
}

type spotQueriesImpl struct {
	uow   shared.UnitOfWork
	spots SpotViewRepo
}

func NewSpotQueries(uow shared.UnitOfWork, spots SpotViewRepo) SpotQueries {
	return &spotQueriesImpl{uow: uow, spots: spots}
}

func (q *spotQueriesImpl) ListFree(ctx context.Context) ([]*SpotView, error) {
	var views []*SpotView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var derr error
		views, derr = q.spots.ListFree(ctx, dbtx)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
