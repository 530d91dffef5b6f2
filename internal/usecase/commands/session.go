package commands

import (
	"context"
	"time"

	"smartpark/internal/domain/billing"
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
	ErrSpotNotFound         = errs.New("parking spot not found")
	ErrSpotOccupied         = errs.New("parking spot is occupied")
	ErrCarNotFound          = errs.New("car not found")
	ErrCarAlreadyParked     = errs.New("car already has an open session")
	ErrSessionNotFound      = errs.New("parking session not found")
	ErrSessionAlreadyClosed = errs.New("parking session is already closed")
	ErrNoActiveTariff       = errs.New("no tariff in effect")
)

type OpenSessionRequest struct {
	SpotID uuid.UUID
	CarID  uuid.UUID
}

type CheckoutResult struct {
	PaymentID uuid.UUID
	SessionID uuid.UUID
	Invoice   billing.Invoice
	Lines     []billing.Line
}

type SessionCommands interface {
	OpenSession(ctx context.Context, req OpenSessionRequest, actorID uuid.UUID, actorRole string) (uuid.UUID, error)
	Checkout(ctx context.Context, sessionID uuid.UUID, actorID uuid.UUID, actorRole string) (*CheckoutResult, error)
}

type sessionUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSessionUseCase(uow shared.UnitOfWork, clk clock.Clock) SessionCommands {
	return &sessionUseCaseImpl{uow: uow, clock: clk}
}

func (uc *sessionUseCaseImpl) OpenSession(ctx context.Context, req OpenSessionRequest, actorID uuid.UUID, actorRole string) (uuid.UUID, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		car, derr := tx.Reads().CarByID(ctx, req.CarID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrCarNotFound)
			}
			return derr
		}
		if actorRole != user.RoleAdmin.String() && car.UserID != actorID {
			return ErrCarNotFound
		}

		exists, derr := tx.Spots().Exists(ctx, tx.DB(), req.SpotID)
		if derr != nil {
			return derr
		}
		if !exists {
			return ErrSpotNotFound
		}

		occupied, derr := tx.Sessions().HasOpenOnSpot(ctx, tx.DB(), req.SpotID)
		if derr != nil {
			return derr
		}
		if occupied {
			return ErrSpotOccupied
		}

		parked, derr := tx.Sessions().HasOpenForCar(ctx, tx.DB(), req.CarID)
		if derr != nil {
			return derr
		}
		if parked {
			return ErrCarAlreadyParked
		}

		s := session.NewParkingSession(req.SpotID, req.CarID, car.UserID, uc.clock.Now())
		id, derr := tx.Sessions().Create(ctx, tx.DB(), s)
		if derr != nil {
			// Partial unique indexes on open sessions catch the race the
			// existence checks above cannot see under ReadCommitted.
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.Mark(derr, ErrSpotOccupied)
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

// Checkout settles an open session in one transaction: pending and
// in-progress charge requests are cancelled, queued or running jobs
// aborted (releasing the bot if it was held), the current tariff applied
// with the account's discounts, the session closed and the payment
// written. Everything commits or nothing does.
func (uc *sessionUseCaseImpl) Checkout(ctx context.Context, sessionID uuid.UUID, actorID uuid.UUID, actorRole string) (*CheckoutResult, error) {
	var result *CheckoutResult
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

		now := uc.clock.Now()

		if derr := uc.cancelPendingCharges(ctx, tx, sessionID, now); derr != nil {
			return derr
		}

		energy, derr := tx.Jobs().FinishedEnergyBySession(ctx, tx.DB(), sessionID)
		if derr != nil {
			return derr
		}
		chargingMinutes, derr := tx.Jobs().FinishedMinutesBySession(ctx, tx.DB(), sessionID)
		if derr != nil {
			return derr
		}

		t, derr := tx.Tariffs().CurrentAt(ctx, tx.DB(), now)
		if derr != nil {
			return derr
		}
		if t == nil {
			return ErrNoActiveTariff
		}

		account, derr := tx.Reads().UserByID(ctx, s.UserID())
		if derr != nil {
			return derr
		}
		tier, derr := user.NewTier(account.Tier)
		if derr != nil {
			return derr
		}
		rates := t.Rates().Discounted(tier,
			user.NewDiscountPtr(account.ParkingDiscount),
			user.NewDiscountPtr(account.EnergyDiscount))

		inv := billing.Compute(s.StartUtc(), now, energy, rates)
		lines := inv.Lines()

		if derr := s.Close(now, inv.TotalMinutes, chargingMinutes); derr != nil {
			return derr
		}
		if derr := tx.Sessions().Update(ctx, tx.DB(), s); derr != nil {
			return derr
		}

		payment := shared.NewPayment{
			SessionID: sessionID,
			UserID:    s.UserID(),
			Tier:      tier.String(),
			Total:     inv.Total,
			CreatedAt: now,
		}
		for _, line := range lines {
			payment.Lines = append(payment.Lines, shared.NewPaymentLine{
				Type:      string(line.Type),
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Total:     line.Total,
			})
		}
		paymentID, derr := tx.Payments().Create(ctx, tx.DB(), payment)
		if derr != nil {
			return derr
		}

		result = &CheckoutResult{
			PaymentID: paymentID,
			SessionID: sessionID,
			Invoice:   inv,
			Lines:     lines,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// cancelPendingCharges resolves the charge work still attached to the
// session: pending and in-progress requests become cancelled, queued
// and running jobs become aborted. A running job's abort also frees the
// bot and stamps the job's end time. Unconfirmed proposals stay
// proposed; accepting one afterwards fails on the closed session.
func (uc *sessionUseCaseImpl) cancelPendingCharges(ctx context.Context, tx shared.Tx, sessionID uuid.UUID, now time.Time) error {
	reqs, err := tx.Requests().ListActiveBySession(ctx, tx.DB(), sessionID)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		if err := req.Cancel(); err != nil {
			return err
		}
		if err := tx.Requests().Update(ctx, tx.DB(), req); err != nil {
			return err
		}
	}

	jobs, err := tx.Jobs().ListAbortableBySession(ctx, tx.DB(), sessionID)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		wasRunning := job.Status() == charging.JobRunning
		if err := job.Abort(now); err != nil {
			return err
		}
		if err := tx.Jobs().Update(ctx, tx.DB(), job); err != nil {
			return err
		}
		if wasRunning {
			if err := tx.Bot().Release(ctx, tx.DB(), now); err != nil {
				return err
			}
		}
	}
	return nil
}
