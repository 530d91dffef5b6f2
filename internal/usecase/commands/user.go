package commands

import (
	"context"

	"smartpark/internal/domain/user"
	"smartpark/internal/infra"
	"smartpark/internal/pkg/errs"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UpdateUserRatesRequest struct {
	Tier            string
	ParkingDiscount *float64
	EnergyDiscount  *float64
}

type UserCommands interface {
	UpdateRates(ctx context.Context, userID uuid.UUID, req UpdateUserRatesRequest) error
}

type userUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewUserUseCase(uow shared.UnitOfWork) UserCommands {
	return &userUseCaseImpl{uow: uow}
}

// UpdateRates sets an account's billing tier and premium discounts.
// Discount fractions are clamped into [0,1] before they are stored.
func (uc *userUseCaseImpl) UpdateRates(ctx context.Context, userID uuid.UUID, req UpdateUserRatesRequest) error {
	tier, err := user.NewTier(req.Tier)
	if err != nil {
		return err
	}

	parking := clampFraction(req.ParkingDiscount)
	energy := clampFraction(req.EnergyDiscount)

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().UserByID(ctx, userID); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrUserNotFound)
			}
			return derr
		}
		return tx.Users().UpdateDiscounts(ctx, tx.DB(), userID, tier.String(), parking, energy)
	})
}

func clampFraction(fraction *float64) *float64 {
	d := user.NewDiscountPtr(fraction)
	if d == nil {
		return nil
	}
	f := d.Fraction()
	return &f
}
