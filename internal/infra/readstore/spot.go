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

type SpotReadStore struct{}

func NewSpotReadStore() *SpotReadStore {
	return &SpotReadStore{}
}

func (r *SpotReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.SpotSnapshot, error) {
	const query = `SELECT id, label FROM parking_spots WHERE id = $1`

	var snap shared.SpotSnapshot
	err := dbtx.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("parking spot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find parking spot by ID", err)
	}
	return &snap, nil
}

// ListFree returns spots with no open session on them, in label order.
func (r *SpotReadStore) ListFree(ctx context.Context, dbtx db.DBTX) ([]*queries.SpotView, error) {
	const query = `
		SELECT p.id, p.label, p.floor
		FROM parking_spots p
		WHERE NOT EXISTS (
			SELECT 1 FROM parking_sessions s
			WHERE s.spot_id = p.id AND s.status = 'open'
		)
		ORDER BY p.label`

	rows, err := dbtx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list free parking spots", err)
	}
	defer rows.Close()

	var spots []*queries.SpotView
	for rows.Next() {
		var v queries.SpotView
		if err := rows.Scan(&v.ID, &v.Label, &v.Floor); err != nil {
			return nil, infra.WrapRepoErr("failed to scan parking spot row", err)
		}
		spots = append(spots, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read parking spot rows", err)
	}
	return spots, nil
}
