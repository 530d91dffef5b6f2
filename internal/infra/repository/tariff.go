package repository

import (
	"context"
	"errors"
	"time"

	"smartpark/internal/domain/billing"
	"smartpark/internal/domain/tariff"
	"smartpark/internal/infra"
	"smartpark/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TariffRepository struct{}

func NewTariffRepository() *TariffRepository {
	return &TariffRepository{}
}

func (r *TariffRepository) Create(ctx context.Context, tx db.DBTX, t *tariff.Tariff) (uuid.UUID, error) {
	const query = `
		INSERT INTO tariffs (id, parking_per_hour, energy_per_kwh, valid_from, valid_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	rates := t.Rates()
	var id uuid.UUID
	err := tx.QueryRow(ctx, query, t.ID(), rates.ParkingPerHour, rates.EnergyPerKWh, t.ValidFrom(), t.ValidTo()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create tariff", err)
	}
	return id, nil
}

const currentTariffQuery = `
	SELECT id, parking_per_hour, energy_per_kwh, valid_from, valid_to
	FROM tariffs
	WHERE valid_from <= $1 AND (valid_to IS NULL OR valid_to >= $1)
	ORDER BY valid_from DESC
	LIMIT 1`

// CurrentAt resolves the tariff in effect at the given instant. Among
// overlapping windows the latest valid_from wins. Nil when no tariff
// covers the instant.
func (r *TariffRepository) CurrentAt(ctx context.Context, tx db.DBTX, at time.Time) (*tariff.Tariff, error) {
	return r.currentAt(ctx, tx, currentTariffQuery, at)
}

// CurrentAtForUpdate locks the resolved row so a concurrent publish
// cannot close it mid-transaction.
func (r *TariffRepository) CurrentAtForUpdate(ctx context.Context, tx db.DBTX, at time.Time) (*tariff.Tariff, error) {
	return r.currentAt(ctx, tx, currentTariffQuery+` FOR UPDATE`, at)
}

func (r *TariffRepository) currentAt(ctx context.Context, tx db.DBTX, query string, at time.Time) (*tariff.Tariff, error) {
	var (
		id             uuid.UUID
		parkingPerHour float64
		energyPerKWh   float64
		validFrom      time.Time
		validTo        *time.Time
	)
	err := tx.QueryRow(ctx, query, at).Scan(&id, &parkingPerHour, &energyPerKWh, &validFrom, &validTo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to resolve current tariff", err)
	}

	rates, err := billing.NewRates(parkingPerHour, energyPerKWh)
	if err != nil {
		return nil, infra.WrapRepoErr("stored tariff has invalid rates", err)
	}
	t, err := tariff.ReconstructTariff(id, rates, validFrom, validTo)
	if err != nil {
		return nil, infra.WrapRepoErr("stored tariff has invalid window", err)
	}
	return t, nil
}

func (r *TariffRepository) SetValidTo(ctx context.Context, tx db.DBTX, id uuid.UUID, validTo time.Time) error {
	const query = `UPDATE tariffs SET valid_to = $2 WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, validTo)
	if err != nil {
		return infra.WrapRepoErr("failed to close tariff validity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("tariff not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}
