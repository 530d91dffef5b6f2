package repository

import (
	"context"
	"errors"
	"time"

	"smartpark/internal/domain/session"
	"smartpark/internal/infra"
	"smartpark/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, spot_id, car_id, user_id, start_utc, end_utc, status, total_minutes, charging_minutes`

type SessionRepository struct{}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, tx db.DBTX, s *session.ParkingSession) (uuid.UUID, error) {
	const query = `
		INSERT INTO parking_sessions (id, spot_id, car_id, user_id, start_utc, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query, s.ID(), s.SpotID(), s.CarID(), s.UserID(), s.StartUtc(), s.Status()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create parking session", err)
	}
	return id, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*session.ParkingSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM parking_sessions WHERE id = $1`
	return r.scanOne(ctx, tx, query, id)
}

// FindByIDForUpdate locks the session row for the rest of the
// transaction. Checkout and charge transitions go through this to
// serialize concurrent writes on one session.
func (r *SessionRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*session.ParkingSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM parking_sessions WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, tx, query, id)
}

func (r *SessionRepository) Update(ctx context.Context, tx db.DBTX, s *session.ParkingSession) error {
	const query = `
		UPDATE parking_sessions
		SET end_utc = $2, status = $3, total_minutes = $4, charging_minutes = $5
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, s.ID(), s.EndUtc(), s.Status(), s.TotalMinutes(), s.ChargingMinutes())
	if err != nil {
		return infra.WrapRepoErr("failed to update parking session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("parking session not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *SessionRepository) HasOpenForCar(ctx context.Context, tx db.DBTX, carID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM parking_sessions WHERE car_id = $1 AND status = 'open')`

	var exists bool
	if err := tx.QueryRow(ctx, query, carID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check open session for car", err)
	}
	return exists, nil
}

func (r *SessionRepository) HasOpenOnSpot(ctx context.Context, tx db.DBTX, spotID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM parking_sessions WHERE spot_id = $1 AND status = 'open')`

	var exists bool
	if err := tx.QueryRow(ctx, query, spotID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check open session on spot", err)
	}
	return exists, nil
}

func (r *SessionRepository) scanOne(ctx context.Context, tx db.DBTX, query string, id uuid.UUID) (*session.ParkingSession, error) {
	var (
		sessionID       uuid.UUID
		spotID          uuid.UUID
		carID           uuid.UUID
		userID          uuid.UUID
		startUtc        time.Time
		endUtc          *time.Time
		status          string
		totalMinutes    *int
		chargingMinutes *int
	)

	err := tx.QueryRow(ctx, query, id).Scan(&sessionID, &spotID, &carID, &userID, &startUtc, &endUtc, &status, &totalMinutes, &chargingMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("parking session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find parking session", err)
	}

	return session.Reconstruct(sessionID, spotID, carID, userID, startUtc, endUtc, session.Status(status), totalMinutes, chargingMinutes), nil
}
