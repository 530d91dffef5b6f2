package readstore

import (
	"context"
	"errors"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/queries"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CarReadStore struct{}

func NewCarReadStore() *CarReadStore {
	return &CarReadStore{}
}

func (r *CarReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.CarSnapshot, error) {
	const query = `SELECT id, user_id, plate, model_id FROM cars WHERE id = $1`

	var snap shared.CarSnapshot
	err := dbtx.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.UserID, &snap.Plate, &snap.ModelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("car not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find car by ID", err)
	}
	return &snap, nil
}

func (r *CarReadStore) ListByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*queries.CarView, error) {
	const query = `
		SELECT c.id, c.plate, m.name, m.battery_capacity_kwh
		FROM cars c
		JOIN car_models m ON m.id = c.model_id
		WHERE c.user_id = $1
		ORDER BY c.plate`

	rows, err := dbtx.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cars by user", err)
	}
	defer rows.Close()

	var cars []*queries.CarView
	for rows.Next() {
		var v queries.CarView
		if err := rows.Scan(&v.ID, &v.Plate, &v.ModelName, &v.BatteryCapacityKWh); err != nil {
			return nil, infra.WrapRepoErr("failed to scan car row", err)
		}
		cars = append(cars, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read car rows", err)
	}
	return cars, nil
}
