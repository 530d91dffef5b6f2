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

type SessionReadStore struct{}

func NewSessionReadStore() *SessionReadStore {
	return &SessionReadStore{}
}

func (r *SessionReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.SessionView, error) {
	const query = `
		SELECT s.id, s.spot_id, p.label, s.car_id, c.plate, s.user_id,
		       s.start_utc, s.end_utc, s.status, s.total_minutes, s.charging_minutes
		FROM parking_sessions s
		JOIN parking_spots p ON p.id = s.spot_id
		JOIN cars c ON c.id = s.car_id
		WHERE s.id = $1`

	var v queries.SessionView
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.SpotID, &v.SpotLabel, &v.CarID, &v.CarPlate, &v.UserID,
		&v.StartUtc, &v.EndUtc, &v.Status, &v.TotalMinutes, &v.ChargingMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("parking session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find parking session by ID", err)
	}
	return &v, nil
}

func (r *SessionReadStore) FindSnapshotByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.SessionSnapshot, error) {
	const query = `
		SELECT id, spot_id, car_id, user_id, start_utc, status
		FROM parking_sessions WHERE id = $1`

	var snap shared.SessionSnapshot
	err := dbtx.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.SpotID, &snap.CarID, &snap.UserID, &snap.StartUtc, &snap.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("parking session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find parking session by ID", err)
	}
	return &snap, nil
}

func (r *SessionReadStore) ListByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*queries.SessionListItem, error) {
	const query = `
		SELECT s.id, p.label, c.plate, s.start_utc, s.end_utc, s.status
		FROM parking_sessions s
		JOIN parking_spots p ON p.id = s.spot_id
		JOIN cars c ON c.id = s.car_id
		WHERE s.user_id = $1
		ORDER BY s.start_utc DESC`

	rows, err := dbtx.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list parking sessions by user", err)
	}
	defer rows.Close()

	var items []*queries.SessionListItem
	for rows.Next() {
		var it queries.SessionListItem
		if err := rows.Scan(&it.ID, &it.SpotLabel, &it.CarPlate, &it.StartUtc, &it.EndUtc, &it.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan parking session row", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read parking session rows", err)
	}
	return items, nil
}
