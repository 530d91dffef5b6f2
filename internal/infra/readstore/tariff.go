package readstore

import (
	"context"
	"errors"
	"time"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type TariffReadStore struct{}

func NewTariffReadStore() *TariffReadStore {
	return &TariffReadStore{}
}

func (r *TariffReadStore) List(ctx context.Context, dbtx db.DBTX) ([]*queries.TariffView, error) {
	const query = `
		SELECT id, parking_per_hour, energy_per_kwh, valid_from, valid_to
		FROM tariffs
		ORDER BY valid_from DESC`

	rows, err := dbtx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tariffs", err)
	}
	defer rows.Close()

	var views []*queries.TariffView
	for rows.Next() {
		var v queries.TariffView
		if err := rows.Scan(&v.ID, &v.ParkingPerHour, &v.EnergyPerKWh, &v.ValidFrom, &v.ValidTo); err != nil {
			return nil, infra.WrapRepoErr("failed to scan tariff row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read tariff rows", err)
	}
	return views, nil
}

// CurrentAt mirrors the write-side resolution: latest valid_from wins
// among windows covering the instant. Nil when none does.
func (r *TariffReadStore) CurrentAt(ctx context.Context, dbtx db.DBTX, at time.Time) (*queries.TariffView, error) {
	const query = `
		SELECT id, parking_per_hour, energy_per_kwh, valid_from, valid_to
		FROM tariffs
		WHERE valid_from <= $1 AND (valid_to IS NULL OR valid_to >= $1)
		ORDER BY valid_from DESC
		LIMIT 1`

	var v queries.TariffView
	err := dbtx.QueryRow(ctx, query, at).Scan(&v.ID, &v.ParkingPerHour, &v.EnergyPerKWh, &v.ValidFrom, &v.ValidTo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to resolve current tariff", err)
	}
	return &v, nil
}
