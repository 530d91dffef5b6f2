package session

import (
	"time"

	"smartpark/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotOpen       = errs.New("parking session is not open")
	ErrAlreadyClosed = errs.New("parking session is already closed")
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// ParkingSession is the occupancy period of one car on one spot. It is
// created open and closed exactly once at checkout.
type ParkingSession struct {
	id              uuid.UUID
	spotID          uuid.UUID
	carID           uuid.UUID
	userID          uuid.UUID
	startUtc        time.Time
	endUtc          *time.Time
	status          Status
	totalMinutes    *int
	chargingMinutes *int
}

func NewParkingSession(spotID, carID, userID uuid.UUID, now time.Time) *ParkingSession {
	return &ParkingSession{
		id:       uuid.New(),
		spotID:   spotID,
		carID:    carID,
		userID:   userID,
		startUtc: now,
		status:   StatusOpen,
	}
}

func Reconstruct(id, spotID, carID, userID uuid.UUID, startUtc time.Time, endUtc *time.Time, status Status, totalMinutes, chargingMinutes *int) *ParkingSession {
	return &ParkingSession{
		id:              id,
		spotID:          spotID,
		carID:           carID,
		userID:          userID,
		startUtc:        startUtc,
		endUtc:          endUtc,
		status:          status,
		totalMinutes:    totalMinutes,
		chargingMinutes: chargingMinutes,
	}
}

func (s *ParkingSession) ID() uuid.UUID         { return s.id }
func (s *ParkingSession) SpotID() uuid.UUID     { return s.spotID }
func (s *ParkingSession) CarID() uuid.UUID      { return s.carID }
func (s *ParkingSession) UserID() uuid.UUID     { return s.userID }
func (s *ParkingSession) StartUtc() time.Time   { return s.startUtc }
func (s *ParkingSession) EndUtc() *time.Time    { return s.endUtc }
func (s *ParkingSession) Status() Status        { return s.status }
func (s *ParkingSession) TotalMinutes() *int    { return s.totalMinutes }
func (s *ParkingSession) ChargingMinutes() *int { return s.chargingMinutes }

func (s *ParkingSession) IsOpen() bool {
	return s.status == StatusOpen
}

func (s *ParkingSession) OwnedBy(userID uuid.UUID) bool {
	return s.userID == userID
}

// Close ends the session at the given instant, recording the derived
// minute totals. Closing twice is rejected.
func (s *ParkingSession) Close(now time.Time, totalMinutes, chargingMinutes int) error {
	if s.status != StatusOpen {
		return ErrAlreadyClosed
	}
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	if chargingMinutes < 0 {
		chargingMinutes = 0
	}
	s.status = StatusClosed
	s.endUtc = &now
	s.totalMinutes = &totalMinutes
	s.chargingMinutes = &chargingMinutes
	return nil
}
