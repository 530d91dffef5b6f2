package commands

import (
	"context"
	"time"

	"smartpark/internal/domain/billing"
	"smartpark/internal/domain/tariff"
	"smartpark/internal/pkg/clock"
	"smartpark/internal/pkg/errs"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrEffectiveFromInPast = errs.New("tariff effective date is in the past")

type PublishTariffRequest struct {
	ParkingPerHour float64
	EnergyPerKWh   float64
	EffectiveFrom  *time.Time
}

type TariffCommands interface {
	Publish(ctx context.Context, req PublishTariffRequest) (uuid.UUID, error)
}

type tariffUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTariffUseCase(uow shared.UnitOfWork, clk clock.Clock) TariffCommands {
	return &tariffUseCaseImpl{uow: uow, clock: clk}
}

// Publish creates a new tariff and closes the currently effective one a
// second before the new one takes over, so no instant is priced twice.
func (uc *tariffUseCaseImpl) Publish(ctx context.Context, req PublishTariffRequest) (uuid.UUID, error) {
	rates, err := billing.NewRates(req.ParkingPerHour, req.EnergyPerKWh)
	if err != nil {
		return uuid.Nil, err
	}

	now := uc.clock.Now()
	effectiveFrom := now
	if req.EffectiveFrom != nil {
		effectiveFrom = req.EffectiveFrom.UTC()
	}
	if effectiveFrom.Before(now) {
		return uuid.Nil, ErrEffectiveFromInPast
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, derr := tx.Tariffs().CurrentAtForUpdate(ctx, tx.DB(), effectiveFrom)
		if derr != nil {
			return derr
		}
		if current != nil {
			current.CloseBefore(effectiveFrom)
			if derr := tx.Tariffs().SetValidTo(ctx, tx.DB(), current.ID(), *current.ValidTo()); derr != nil {
				return derr
			}
		}

		t := tariff.NewTariff(rates, effectiveFrom)
		id, derr := tx.Tariffs().Create(ctx, tx.DB(), t)
		if derr != nil {
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
