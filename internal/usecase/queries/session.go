package queries

import (
	"context"
	"time"

	"smartpark/internal/domain/billing"
	"smartpark/internal/domain/session"
	"smartpark/internal/domain/user"
	"smartpark/internal/infra/db"
	"smartpark/internal/pkg/clock"
	"smartpark/internal/pkg/errs"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errs.New("parking session not found")
	ErrSessionNotOpen  = errs.New("parking session is not open")
	ErrNoActiveTariff  = errs.New("no tariff in effect")
)

type SessionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*SessionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*SessionListItem, error)
	// PreviewCheckout computes what the session would cost if settled
	// now, at list price. Premium discounts apply only at the real
	// checkout.
	PreviewCheckout(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*InvoiceView, error)
}

type SessionViewRepo interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*SessionView, error)
	ListByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*SessionListItem, error)
}

type ChargeEnergyRepo interface {
	FinishedEnergyBySession(ctx context.Context, dbtx db.DBTX, sessionID uuid.UUID) (float64, error)
}

type TariffResolverRepo interface {
	CurrentAt(ctx context.Context, dbtx db.DBTX, at time.Time) (*TariffView, error)
}

type sessionQueriesImpl struct {
	uow      shared.UnitOfWork
	sessions SessionViewRepo
	charges  ChargeEnergyRepo
	tariffs  TariffResolverRepo
	clock    clock.Clock
}

func NewSessionQueries(uow shared.UnitOfWork, sessions SessionViewRepo, charges ChargeEnergyRepo, tariffs TariffResolverRepo, clk clock.Clock) SessionQueries {
	return &sessionQueriesImpl{
		uow:      uow,
		sessions: sessions,
		charges:  charges,
		tariffs:  tariffs,
		clock:    clk,
	}
}

func (q *sessionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*SessionView, error) {
	var view *SessionView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		v, derr := q.sessions.FindByID(ctx, dbtx, id)
		if derr != nil {
			return derr
		}
		if actorRole != user.RoleAdmin.String() && v.UserID != actorID {
			return ErrSessionNotFound
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *sessionQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*SessionListItem, error) {
	var items []*SessionListItem
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var derr error
		items, derr = q.sessions.ListByUser(ctx, dbtx, userID)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (q *sessionQueriesImpl) PreviewCheckout(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*InvoiceView, error) {
	var view *InvoiceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		s, derr := q.sessions.FindByID(ctx, dbtx, id)
		if derr != nil {
			return derr
		}
		if actorRole != user.RoleAdmin.String() && s.UserID != actorID {
			return ErrSessionNotFound
		}
		if s.Status != string(session.StatusOpen) {
			return ErrSessionNotOpen
		}

		energy, derr := q.charges.FinishedEnergyBySession(ctx, dbtx, id)
		if derr != nil {
			return derr
		}

		now := q.clock.Now()
		t, derr := q.tariffs.CurrentAt(ctx, dbtx, now)
		if derr != nil {
			return derr
		}
		if t == nil {
			return ErrNoActiveTariff
		}

		rates, derr := billing.NewRates(t.ParkingPerHour, t.EnergyPerKWh)
		if derr != nil {
			return derr
		}
		inv := billing.Compute(s.StartUtc, now, energy, rates)

		view = &InvoiceView{
			SessionID:      s.ID,
			StartUtc:       s.StartUtc,
			AsOf:           now,
			TotalMinutes:   inv.TotalMinutes,
			EnergyKWh:      inv.EnergyKWh,
			ParkingPerHour: inv.Rates.ParkingPerHour,
			EnergyPerKWh:   inv.Rates.EnergyPerKWh,
			ParkingCost:    inv.ParkingCost,
			EnergyCost:     inv.EnergyCost,
			Total:          inv.Total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
