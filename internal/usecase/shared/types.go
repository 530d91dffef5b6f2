package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type UserSnapshot struct {
	ID              uuid.UUID
	Email           string
	Role            string
	Tier            string
	ParkingDiscount *float64
	EnergyDiscount  *float64
}

type CarSnapshot struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Plate   string
	ModelID uuid.UUID
}

type SpotSnapshot struct {
	ID    uuid.UUID
	Label string
}

type SessionSnapshot struct {
	ID       uuid.UUID
	SpotID   uuid.UUID
	CarID    uuid.UUID
	UserID   uuid.UUID
	StartUtc time.Time
	Status   string
}
