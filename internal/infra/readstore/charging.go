package readstore

import (
	"context"
	"errors"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ChargeReadStore struct{}

func NewChargeReadStore() *ChargeReadStore {
	return &ChargeReadStore{}
}

func (r *ChargeReadStore) RequestsBySession(ctx context.Context, dbtx db.DBTX, sessionID uuid.UUID) ([]*queries.ChargeRequestView, error) {
	const query = `
		SELECT id, session_id, target_soc, initial_soc, requested_at, status, est_wait_min, est_completion_min
		FROM charge_requests
		WHERE session_id = $1
		ORDER BY requested_at DESC`

	rows, err := dbtx.Query(ctx, query, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list charge requests by session", err)
	}
	defer rows.Close()

	var views []*queries.ChargeRequestView
	for rows.Next() {
		var v queries.ChargeRequestView
		err := rows.Scan(&v.ID, &v.SessionID, &v.TargetSoC, &v.InitialSoC, &v.RequestedAt, &v.Status, &v.EstWaitMinutes, &v.EstCompletionMinutes)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan charge request row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read charge request rows", err)
	}
	return views, nil
}

const jobViewColumns = `
	j.id, j.request_id, cr.session_id, p.label, j.status, j.start_utc, j.end_utc, j.energy_kwh, j.final_soc
	FROM charge_jobs j
	JOIN charge_requests cr ON cr.id = j.request_id
	JOIN parking_sessions s ON s.id = cr.session_id
	JOIN parking_spots p ON p.id = s.spot_id`

func (r *ChargeReadStore) QueuedJobs(ctx context.Context, dbtx db.DBTX) ([]*queries.ChargeJobView, error) {
	const query = `SELECT` + jobViewColumns + `
		WHERE j.status = 'queued'
		ORDER BY cr.requested_at, j.id`

	rows, err := dbtx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list queued charge jobs", err)
	}
	defer rows.Close()

	var views []*queries.ChargeJobView
	for rows.Next() {
		v, err := scanJobView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan charge job row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read charge job rows", err)
	}
	return views, nil
}

// RunningJob returns the job currently holding the bot, newest start
// first in case stale rows ever coexist. Nil when the bot is idle.
func (r *ChargeReadStore) RunningJob(ctx context.Context, dbtx db.DBTX) (*queries.ChargeJobView, error) {
	const query = `SELECT` + jobViewColumns + `
		WHERE j.status = 'running'
		ORDER BY j.start_utc DESC
		LIMIT 1`

	v, err := scanJobView(dbtx.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find running charge job", err)
	}
	return v, nil
}

func (r *ChargeReadStore) FindJobByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.ChargeJobView, error) {
	const query = `SELECT` + jobViewColumns + `
		WHERE j.id = $1`

	v, err := scanJobView(dbtx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("charge job not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find charge job by ID", err)
	}
	return v, nil
}

func (r *ChargeReadStore) CountQueued(ctx context.Context, dbtx db.DBTX) (int, error) {
	const query = `SELECT COUNT(*) FROM charge_jobs WHERE status = 'queued'`

	var n int
	if err := dbtx.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count queued charge jobs", err)
	}
	return n, nil
}

func (r *ChargeReadStore) FinishedEnergyBySession(ctx context.Context, dbtx db.DBTX, sessionID uuid.UUID) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(j.energy_kwh), 0)
		FROM charge_jobs j
		JOIN charge_requests cr ON cr.id = j.request_id
		WHERE cr.session_id = $1 AND j.status = 'finished'`

	var total float64
	if err := dbtx.QueryRow(ctx, query, sessionID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to sum finished charge energy", err)
	}
	return total, nil
}

func scanJobView(row pgx.Row) (*queries.ChargeJobView, error) {
	var v queries.ChargeJobView
	err := row.Scan(&v.ID, &v.RequestID, &v.SessionID, &v.SpotLabel, &v.Status, &v.StartUtc, &v.EndUtc, &v.EnergyKWh, &v.FinalSoC)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
