package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"smartpark/internal/infra/db"
	"smartpark/internal/infra/readstore"
	"smartpark/internal/infra/repository"
	"smartpark/internal/pkg/errs"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	sessionRepo  shared.SessionRepository
	spotRepo     shared.SpotRepository
	requestRepo  shared.ChargeRequestRepository
	jobRepo      shared.ChargeJobRepository
	botRepo      shared.BotRepository
	tariffRepo   shared.TariffRepository
	paymentRepo  shared.PaymentRepository
	userRepo     shared.UserRepository
	commandReads shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Sessions() shared.SessionRepository {
	if t.sessionRepo == nil {
		t.sessionRepo = repository.NewSessionRepository()
	}
	return t.sessionRepo
}

func (t *pgTx) Spots() shared.SpotRepository {
	if t.spotRepo == nil {
		t.spotRepo = repository.NewSpotRepository()
	}
	return t.spotRepo
}

func (t *pgTx) Requests() shared.ChargeRequestRepository {
	if t.requestRepo == nil {
		t.requestRepo = repository.NewChargeRequestRepository()
	}
	return t.requestRepo
}

func (t *pgTx) Jobs() shared.ChargeJobRepository {
	if t.jobRepo == nil {
		t.jobRepo = repository.NewChargeJobRepository()
	}
	return t.jobRepo
}

func (t *pgTx) Bot() shared.BotRepository {
	if t.botRepo == nil {
		t.botRepo = repository.NewBotRepository()
	}
	return t.botRepo
}

func (t *pgTx) Tariffs() shared.TariffRepository {
	if t.tariffRepo == nil {
		t.tariffRepo = repository.NewTariffRepository()
	}
	return t.tariffRepo
}

func (t *pgTx) Payments() shared.PaymentRepository {
	if t.paymentRepo == nil {
		t.paymentRepo = repository.NewPaymentRepository()
	}
	return t.paymentRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository()
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	userStore    *readstore.UserReadStore
	carStore     *readstore.CarReadStore
	spotStore    *readstore.SpotReadStore
	sessionStore *readstore.SessionReadStore
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	if r.userStore == nil {
		r.userStore = readstore.NewUserReadStore()
	}
	return r.userStore.FindByID(ctx, r.dbtx, id)
}

func (r *commandReads) CarByID(ctx context.Context, id uuid.UUID) (*shared.CarSnapshot, error) {
	if r.carStore == nil {
		r.carStore = readstore.NewCarReadStore()
	}
	return r.carStore.FindByID(ctx, r.dbtx, id)
}

func (r *commandReads) SpotByID(ctx context.Context, id uuid.UUID) (*shared.SpotSnapshot, error) {
	if r.spotStore == nil {
		r.spotStore = readstore.NewSpotReadStore()
	}
	return r.spotStore.FindByID(ctx, r.dbtx, id)
}

func (r *commandReads) SessionByID(ctx context.Context, id uuid.UUID) (*shared.SessionSnapshot, error) {
	if r.sessionStore == nil {
		r.sessionStore = readstore.NewSessionReadStore()
	}
	return r.sessionStore.FindSnapshotByID(ctx, r.dbtx, id)
}
