package repository

import (
	"context"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// UpdateDiscounts sets the billing tier and the premium discount
// fractions of an account. Discounts are stored as-is; the billing
// engine ignores them for base tier accounts.
func (r *UserRepository) UpdateDiscounts(ctx context.Context, tx db.DBTX, userID uuid.UUID, tier string, parkingDiscount, energyDiscount *float64) error {
	const query = `
		UPDATE users
		SET tier = $2, parking_discount = $3, energy_discount = $4
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, userID, tier, parkingDiscount, energyDiscount)
	if err != nil {
		return infra.WrapRepoErr("failed to update user discounts", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}
