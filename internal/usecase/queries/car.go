package queries

import (
	"context"

	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

type CarQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CarView, error)
}

type CarViewRepo interface {
	ListByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*CarView, error)
}

type carQueriesImpl struct {
	uow  shared.UnitOfWork
	cars CarViewRepo
}

func NewCarQueries(uow shared.UnitOfWork, cars CarViewRepo) CarQueries {
	return &carQueriesImpl{uow: uow, cars: cars}
}

func (q *carQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*CarView, error) {
	var views []*CarView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var derr error
		views, derr = q.cars.ListByUser(ctx, dbtx, userID)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
