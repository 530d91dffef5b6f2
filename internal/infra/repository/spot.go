package repository

import (
	"context"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"

	"github.com/google/uuid"
)

type SpotRepository struct{}

func NewSpotRepository() *SpotRepository {
	return &SpotRepository{}
}

func (r *SpotRepository) Exists(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM parking_spots WHERE id = $1)`

	var exists bool
	if err := tx.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check parking spot", err)
	}
	return exists, nil
}
