package queries

import (
	"context"
	"time"

	"smartpark/internal/domain/user"
	"smartpark/internal/infra/db"
	"smartpark/internal/pkg/errs"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidDateRange = errs.New("invalid date range")

type PaymentQueries interface {
	// ListByRange returns payments settled in [from, to]. Admins see
	// everyone's, drivers only their own.
	ListByRange(ctx context.Context, from, to time.Time, actorID uuid.UUID, actorRole string) ([]*PaymentView, error)
}

type PaymentViewRepo interface {
	ListByRange(ctx context.Context, dbtx db.DBTX, from, to time.Time, userID *uuid.UUID) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	uow      shared.UnitOfWork
	payments PaymentViewRepo
}

func NewPaymentQueries(uow shared.UnitOfWork, payments PaymentViewRepo) PaymentQueries {
	return &paymentQueriesImpl{uow: uow, payments: payments}
}

func (q *paymentQueriesImpl) ListByRange(ctx context.Context, from, to time.Time, actorID uuid.UUID, actorRole string) ([]*PaymentView, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	var scope *uuid.UUID
	if actorRole != user.RoleAdmin.String() {
		scope = &actorID
	}

	var views []*PaymentView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var derr error
		views, derr = q.payments.ListByRange(ctx, dbtx, from, to, scope)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
