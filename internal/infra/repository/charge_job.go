package repository

import (
	"context"
	"errors"
	"time"

	"smartpark/internal/domain/charging"
	"smartpark/internal/infra"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const chargeJobColumns = `id, request_id, status, start_utc, end_utc, energy_kwh, final_soc`

type ChargeJobRepository struct{}

func NewChargeJobRepository() *ChargeJobRepository {
	return &ChargeJobRepository{}
}

func (r *ChargeJobRepository) Create(ctx context.Context, tx db.DBTX, job *charging.ChargeJob) (uuid.UUID, error) {
	const query = `
		INSERT INTO charge_jobs (id, request_id, status)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, job.ID(), job.RequestID(), job.Status()).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create charge job", err)
	}
	return id, nil
}

func (r *ChargeJobRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*charging.ChargeJob, error) {
	const query = `SELECT ` + chargeJobColumns + ` FROM charge_jobs WHERE id = $1 FOR UPDATE`

	job, err := scanChargeJob(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("charge job not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find charge job", err)
	}
	return job, nil
}

func (r *ChargeJobRepository) Update(ctx context.Context, tx db.DBTX, job *charging.ChargeJob) error {
	const query = `
		UPDATE charge_jobs
		SET status = $2, start_utc = $3, end_utc = $4, energy_kwh = $5, final_soc = $6
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, job.ID(), job.Status(), job.StartUtc(), job.EndUtc(), job.EnergyKWh(), job.FinalSoC())
	if err != nil {
		return infra.WrapRepoErr("failed to update charge job", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("charge job not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

// NextQueued returns the head of the queue in FIFO order: oldest request
// first, job id as the tiebreaker. The row is locked and already-locked
// rows are skipped so concurrent dispatchers never pick the same job.
// Nil result means the queue is empty.
func (r *ChargeJobRepository) NextQueued(ctx context.Context, tx db.DBTX) (*shared.NextJob, error) {
	const query = `
		SELECT j.id, j.request_id, j.status, j.start_utc, j.end_utc, j.energy_kwh, j.final_soc,
		       s.id, s.spot_id
		FROM charge_jobs j
		JOIN charge_requests cr ON cr.id = j.request_id
		JOIN parking_sessions s ON s.id = cr.session_id
		WHERE j.status = 'queued'
		ORDER BY cr.requested_at, j.id
		LIMIT 1
		FOR UPDATE OF j SKIP LOCKED`

	var (
		id        uuid.UUID
		requestID uuid.UUID
		status    string
		startUtc  *time.Time
		endUtc    *time.Time
		energyKWh *float64
		finalSoC  *int
		sessionID uuid.UUID
		spotID    uuid.UUID
	)
	err := tx.QueryRow(ctx, query).Scan(&id, &requestID, &status, &startUtc, &endUtc, &energyKWh, &finalSoC, &sessionID, &spotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to fetch next queued charge job", err)
	}

	return &shared.NextJob{
		Job:       charging.ReconstructChargeJob(id, requestID, charging.JobStatus(status), startUtc, endUtc, energyKWh, finalSoC),
		SessionID: sessionID,
		SpotID:    spotID,
	}, nil
}

func (r *ChargeJobRepository) CountQueued(ctx context.Context, tx db.DBTX) (int, error) {
	const query = `SELECT COUNT(*) FROM charge_jobs WHERE status = 'queued'`

	var n int
	if err := tx.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count queued charge jobs", err)
	}
	return n, nil
}

func (r *ChargeJobRepository) HasRunning(ctx context.Context, tx db.DBTX) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM charge_jobs WHERE status = 'running')`

	var exists bool
	if err := tx.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check running charge job", err)
	}
	return exists, nil
}

func (r *ChargeJobRepository) ListAbortableBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) ([]*charging.ChargeJob, error) {
	const query = `
		SELECT j.id, j.request_id, j.status, j.start_utc, j.end_utc, j.energy_kwh, j.final_soc
		FROM charge_jobs j
		JOIN charge_requests cr ON cr.id = j.request_id
		WHERE cr.session_id = $1 AND j.status IN ('queued', 'running')
		ORDER BY j.id
		FOR UPDATE OF j`

	rows, err := tx.Query(ctx, query, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list abortable charge jobs", err)
	}
	defer rows.Close()

	var jobs []*charging.ChargeJob
	for rows.Next() {
		job, err := scanChargeJob(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan charge job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read charge jobs", err)
	}
	return jobs, nil
}

func (r *ChargeJobRepository) SpotForJob(ctx context.Context, tx db.DBTX, jobID uuid.UUID) (uuid.UUID, error) {
	const query = `
		SELECT s.spot_id
		FROM charge_jobs j
		JOIN charge_requests cr ON cr.id = j.request_id
		JOIN parking_sessions s ON s.id = cr.session_id
		WHERE j.id = $1`

	var spotID uuid.UUID
	err := tx.QueryRow(ctx, query, jobID).Scan(&spotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, infra.WrapRepoErr("charge job not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to resolve spot for charge job", err)
	}
	return spotID, nil
}

// FinishedEnergyBySession sums the delivered energy over finished jobs
// only. Aborted jobs never bill.
func (r *ChargeJobRepository) FinishedEnergyBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(j.energy_kwh), 0)
		FROM charge_jobs j
		JOIN charge_requests cr ON cr.id = j.request_id
		WHERE cr.session_id = $1 AND j.status = 'finished'`

	var total float64
	if err := tx.QueryRow(ctx, query, sessionID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to sum finished charge energy", err)
	}
	return total, nil
}

// FinishedMinutesBySession sums whole charging minutes over finished
// jobs, truncating each job's span and flooring it at zero before
// summing.
func (r *ChargeJobRepository) FinishedMinutesBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) (int, error) {
	const query = `
		SELECT COALESCE(SUM(GREATEST(0, FLOOR(EXTRACT(EPOCH FROM (j.end_utc - j.start_utc)) / 60))), 0)::int
		FROM charge_jobs j
		JOIN charge_requests cr ON cr.id = j.request_id
		WHERE cr.session_id = $1 AND j.status = 'finished'
		  AND j.start_utc IS NOT NULL AND j.end_utc IS NOT NULL`

	var minutes int
	if err := tx.QueryRow(ctx, query, sessionID).Scan(&minutes); err != nil {
		return 0, infra.WrapRepoErr("failed to sum finished charge minutes", err)
	}
	return minutes, nil
}

func scanChargeJob(row pgx.Row) (*charging.ChargeJob, error) {
	var (
		id        uuid.UUID
		requestID uuid.UUID
		status    string
		startUtc  *time.Time
		endUtc    *time.Time
		energyKWh *float64
		finalSoC  *int
	)
	if err := row.Scan(&id, &requestID, &status, &startUtc, &endUtc, &energyKWh, &finalSoC); err != nil {
		return nil, err
	}
	return charging.ReconstructChargeJob(id, requestID, charging.JobStatus(status), startUtc, endUtc, energyKWh, finalSoC), nil
}
