package readstore

import (
	"context"
	"errors"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct{}

func NewUserReadStore() *UserReadStore {
	return &UserReadStore{}
}

func (r *UserReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, email, role, tier, parking_discount, energy_discount
		FROM users WHERE id = $1`

	var snap shared.UserSnapshot
	err := dbtx.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Email, &snap.Role, &snap.Tier, &snap.ParkingDiscount, &snap.EnergyDiscount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &snap, nil
}
