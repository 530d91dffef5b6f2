package repository

import (
	"context"
	"errors"
	"time"

	"smartpark/internal/domain/bot"
	"smartpark/internal/infra"
	"smartpark/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// The charging bot is a singleton row (id = 1, enforced by a table
// check constraint). Acquisition is a conditional update so two
// transactions can never both claim a free bot.
type BotRepository struct{}

func NewBotRepository() *BotRepository {
	return &BotRepository{}
}

func (r *BotRepository) Get(ctx context.Context, tx db.DBTX) (*bot.Bot, error) {
	const query = `
		SELECT current_spot_id, battery_percent, max_power_kw, is_busy, last_update
		FROM bots WHERE id = 1`

	var (
		currentSpotID  *uuid.UUID
		batteryPercent *int
		maxPowerKW     float64
		busy           bool
		lastUpdate     time.Time
	)
	err := tx.QueryRow(ctx, query).Scan(&currentSpotID, &batteryPercent, &maxPowerKW, &busy, &lastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("bot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load bot", err)
	}
	return bot.Reconstruct(currentSpotID, batteryPercent, maxPowerKW, busy, lastUpdate), nil
}

func (r *BotRepository) TryAcquire(ctx context.Context, tx db.DBTX, spotID uuid.UUID, now time.Time) (bool, error) {
	const query = `
		UPDATE bots
		SET is_busy = TRUE, current_spot_id = $1, last_update = $2
		WHERE id = 1 AND NOT is_busy`

	tag, err := tx.Exec(ctx, query, spotID, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to acquire bot", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BotRepository) Release(ctx context.Context, tx db.DBTX, now time.Time) error {
	const query = `
		UPDATE bots
		SET is_busy = FALSE, current_spot_id = NULL, last_update = $1
		WHERE id = 1`

	if _, err := tx.Exec(ctx, query, now); err != nil {
		return infra.WrapRepoErr("failed to release bot", err)
	}
	return nil
}
