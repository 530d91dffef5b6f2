//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, role, tier) VALUES ($1, $2, $3, 'base') ON CONFLICT (email) DO NOTHING",
		userID, email, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func SetTestUserTier(t *testing.T, db DBLike, userID uuid.UUID, tier string, parkingDiscount, energyDiscount *float64) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE users SET tier = $2, parking_discount = $3, energy_discount = $4 WHERE id = $1",
		userID, tier, parkingDiscount, energyDiscount)
	require.NoError(t, err)
}

func CreateTestCarModel(t *testing.T, db DBLike, name string, batteryKWh float64) uuid.UUID {
	t.Helper()

	modelID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO car_models (id, name, battery_capacity_kwh) VALUES ($1, $2, $3)",
		modelID, name, batteryKWh)
	require.NoError(t, err)
	return modelID
}

func CreateTestCar(t *testing.T, db DBLike, userID, modelID uuid.UUID, plate string) uuid.UUID {
	t.Helper()

	carID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO cars (id, user_id, model_id, plate) VALUES ($1, $2, $3, $4)",
		carID, userID, modelID, plate)
	require.NoError(t, err)
	return carID
}

func CreateTestSpot(t *testing.T, db DBLike, label string) uuid.UUID {
	t.Helper()

	spotID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO parking_spots (id, label, floor) VALUES ($1, $2, 0) ON CONFLICT (label) DO NOTHING",
		spotID, label)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM parking_spots WHERE label = $1", label).Scan(&spotID)
	}

	return spotID
}

func CreateTestTariff(t *testing.T, db DBLike, parkingPerHour, energyPerKWh float64, validFrom time.Time) uuid.UUID {
	t.Helper()

	tariffID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO tariffs (id, parking_per_hour, energy_per_kwh, valid_from) VALUES ($1, $2, $3, $4)",
		tariffID, parkingPerHour, energyPerKWh, validFrom)
	require.NoError(t, err)
	return tariffID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO bots (id, is_busy, max_power_kw) VALUES (1, FALSE, 22.0)
		ON CONFLICT (id) DO UPDATE SET is_busy = FALSE, current_spot_id = NULL;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx := context.Background()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx,
			"SELECT tablename FROM pg_tables WHERE schemaname = 'public'")
		if err != nil {
			return
		}
		defer rows.Close()

		var tables []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return
			}
			tables = append(tables, name)
		}
		if len(tables) > 0 {
			truncateSQL.Store(fmt.Sprintf("TRUNCATE %s CASCADE", strings.Join(tables, ", ")))
		}
	})

	sql, ok := truncateSQL.Load().(string)
	if !ok || sql == "" {
		return fmt.Errorf("failed to build truncate statement")
	}

	if _, err := pool.Exec(ctx, sql); err != nil {
		return err
	}
	return SeedReferenceData(pool)
}
