package tariff

import (
	"time"

	"smartpark/internal/domain/billing"
	"smartpark/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidWindow = errs.New("tariff validity window is invalid")

// Tariff is a time-bounded price record. A nil validTo means the tariff
// is open-ended (the current one).
type Tariff struct {
	id        uuid.UUID
	rates     billing.Rates
	validFrom time.Time
	validTo   *time.Time
}

func NewTariff(rates billing.Rates, validFrom time.Time) *Tariff {
	return &Tariff{
		id:        uuid.New(),
		rates:     rates,
		validFrom: validFrom,
	}
}

func ReconstructTariff(id uuid.UUID, rates billing.Rates, validFrom time.Time, validTo *time.Time) (*Tariff, error) {
	if validTo != nil && validTo.Before(validFrom) {
		return nil, ErrInvalidWindow
	}
	return &Tariff{id: id, rates: rates, validFrom: validFrom, validTo: validTo}, nil
}

func (t *Tariff) ID() uuid.UUID        { return t.id }
func (t *Tariff) Rates() billing.Rates { return t.rates }
func (t *Tariff) ValidFrom() time.Time { return t.validFrom }
func (t *Tariff) ValidTo() *time.Time  { return t.validTo }

// Covers reports whether the tariff is in effect at the given instant.
func (t *Tariff) Covers(instant time.Time) bool {
	if instant.Before(t.validFrom) {
		return false
	}
	return t.validTo == nil || !t.validTo.Before(instant)
}

// CloseBefore ends the tariff's validity one second before the successor
// takes effect, so no instant is covered by both.
func (t *Tariff) CloseBefore(successorFrom time.Time) {
	end := successorFrom.Add(-time.Second)
	t.validTo = &end
}

// Resolve picks the tariff in effect at the given instant from a set of
// candidates: the one with the latest validFrom among those covering it.
// Returns nil when none covers the instant.
func Resolve(candidates []*Tariff, instant time.Time) *Tariff {
	var current *Tariff
	for _, c := range candidates {
		if !c.Covers(instant) {
			continue
		}
		if current == nil || c.validFrom.After(current.validFrom) {
			current = c
		}
	}
	return current
}
