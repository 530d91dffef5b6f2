package repository

import (
	"context"
	"errors"
	"time"

	"smartpark/internal/domain/charging"
	"smartpark/internal/infra"
	"smartpark/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const chargeRequestColumns = `id, session_id, target_soc, initial_soc, requested_at, status, est_wait_min, est_completion_min`

type ChargeRequestRepository struct{}

func NewChargeRequestRepository() *ChargeRequestRepository {
	return &ChargeRequestRepository{}
}

func (r *ChargeRequestRepository) Create(ctx context.Context, tx db.DBTX, req *charging.ChargeRequest) (uuid.UUID, error) {
	const query = `
		INSERT INTO charge_requests (id, session_id, target_soc, initial_soc, requested_at, status, est_wait_min, est_completion_min)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		req.ID(), req.SessionID(), req.TargetSoC(), req.InitialSoC(),
		req.RequestedAt(), req.Status(), req.EstWaitMinutes(), req.EstCompletionMinutes(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create charge request", err)
	}
	return id, nil
}

func (r *ChargeRequestRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*charging.ChargeRequest, error) {
	const query = `SELECT ` + chargeRequestColumns + ` FROM charge_requests WHERE id = $1 FOR UPDATE`

	req, err := scanChargeRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("charge request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find charge request", err)
	}
	return req, nil
}

func (r *ChargeRequestRepository) Update(ctx context.Context, tx db.DBTX, req *charging.ChargeRequest) error {
	const query = `UPDATE charge_requests SET status = $2 WHERE id = $1`

	tag, err := tx.Exec(ctx, query, req.ID(), req.Status())
	if err != nil {
		return infra.WrapRepoErr("failed to update charge request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("charge request not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

// ListActiveBySession locks the pending and in-progress requests of a
// session so the checkout cascade operates on a stable set. Proposed
// requests are left alone: unconfirmed proposals simply expire with the
// session.
func (r *ChargeRequestRepository) ListActiveBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) ([]*charging.ChargeRequest, error) {
	const query = `
		SELECT ` + chargeRequestColumns + `
		FROM charge_requests
		WHERE session_id = $1 AND status IN ('pending', 'in_progress')
		ORDER BY requested_at
		FOR UPDATE`

	rows, err := tx.Query(ctx, query, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active charge requests", err)
	}
	defer rows.Close()

	var reqs []*charging.ChargeRequest
	for rows.Next() {
		req, err := scanChargeRequest(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan charge request", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read charge requests", err)
	}
	return reqs, nil
}

func (r *ChargeRequestRepository) HasUnresolvedForSession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM charge_requests
			WHERE session_id = $1 AND status IN ('proposed', 'pending', 'in_progress')
		)`

	var exists bool
	if err := tx.QueryRow(ctx, query, sessionID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check unresolved charge request", err)
	}
	return exists, nil
}

func scanChargeRequest(row pgx.Row) (*charging.ChargeRequest, error) {
	var (
		id               uuid.UUID
		sessionID        uuid.UUID
		targetSoC        int
		initialSoC       *int
		requestedAt      time.Time
		status           string
		estWaitMin       *int
		estCompletionMin *int
	)
	err := row.Scan(&id, &sessionID, &targetSoC, &initialSoC, &requestedAt, &status, &estWaitMin, &estCompletionMin)
	if err != nil {
		return nil, err
	}
	return charging.ReconstructChargeRequest(id, sessionID, targetSoC, initialSoC, requestedAt, charging.RequestStatus(status), estWaitMin, estCompletionMin), nil
}
