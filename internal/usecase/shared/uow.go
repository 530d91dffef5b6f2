package shared

import (
	"context"
	"time"

	"smartpark/internal/domain/bot"
	"smartpark/internal/domain/charging"
	"smartpark/internal/domain/session"
	"smartpark/internal/domain/tariff"
	"smartpark/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Sessions() SessionRepository
	Spots() SpotRepository
	Requests() ChargeRequestRepository
	Jobs() ChargeJobRepository
	Bot() BotRepository
	Tariffs() TariffRepository
	Payments() PaymentRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	CarByID(ctx context.Context, id uuid.UUID) (*CarSnapshot, error)
	SpotByID(ctx context.Context, id uuid.UUID) (*SpotSnapshot, error)
	SessionByID(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error)
}

type SessionRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *session.ParkingSession) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*session.ParkingSession, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*session.ParkingSession, error)
	Update(ctx context.Context, tx db.DBTX, s *session.ParkingSession) error
	HasOpenForCar(ctx context.Context, tx db.DBTX, carID uuid.UUID) (bool, error)
	HasOpenOnSpot(ctx context.Context, tx db.DBTX, spotID uuid.UUID) (bool, error)
}

type SpotRepository interface {
	Exists(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error)
}

type ChargeRequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *charging.ChargeRequest) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*charging.ChargeRequest, error)
	Update(ctx context.Context, tx db.DBTX, req *charging.ChargeRequest) error
	ListActiveBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) ([]*charging.ChargeRequest, error)
	HasUnresolvedForSession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) (bool, error)
}

// NextJob pairs a queued job with the spot the bot must drive to.
type NextJob struct {
	Job       *charging.ChargeJob
	SessionID uuid.UUID
	SpotID    uuid.UUID
}

type ChargeJobRepository interface {
	Create(ctx context.Context, tx db.DBTX, job *charging.ChargeJob) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*charging.ChargeJob, error)
	Update(ctx context.Context, tx db.DBTX, job *charging.ChargeJob) error
	NextQueued(ctx context.Context, tx db.DBTX) (*NextJob, error)
	CountQueued(ctx context.Context, tx db.DBTX) (int, error)
	HasRunning(ctx context.Context, tx db.DBTX) (bool, error)
	ListAbortableBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) ([]*charging.ChargeJob, error)
	SpotForJob(ctx context.Context, tx db.DBTX, jobID uuid.UUID) (uuid.UUID, error)
	FinishedEnergyBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) (float64, error)
	FinishedMinutesBySession(ctx context.Context, tx db.DBTX, sessionID uuid.UUID) (int, error)
}

type BotRepository interface {
	Get(ctx context.Context, tx db.DBTX) (*bot.Bot, error)
	// TryAcquire atomically claims the bot. Returns false when it is
	// already busy, with no row modified.
	TryAcquire(ctx context.Context, tx db.DBTX, spotID uuid.UUID, now time.Time) (bool, error)
	Release(ctx context.Context, tx db.DBTX, now time.Time) error
}

type TariffRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *tariff.Tariff) (uuid.UUID, error)
	// CurrentAt resolves the tariff in effect at the instant, latest
	// validFrom winning among overlapping windows. Nil when none covers it.
	CurrentAt(ctx context.Context, tx db.DBTX, at time.Time) (*tariff.Tariff, error)
	CurrentAtForUpdate(ctx context.Context, tx db.DBTX, at time.Time) (*tariff.Tariff, error)
	SetValidTo(ctx context.Context, tx db.DBTX, id uuid.UUID, validTo time.Time) error
}

// NewPayment is the write model handed to the payment repository: the
// header plus its lines, inserted together.
type NewPayment struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	Tier      string
	Total     float64
	CreatedAt time.Time
	Lines     []NewPaymentLine
}

type NewPaymentLine struct {
	Type      string
	Quantity  float64
	UnitPrice float64
	Total     float64
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, p NewPayment) (uuid.UUID, error)
}

type UserRepository interface {
	UpdateDiscounts(ctx context.Context, tx db.DBTX, userID uuid.UUID, tier string, parkingDiscount, energyDiscount *float64) error
}
