package billing

import (
	"math"
	"time"

	"smartpark/internal/domain/user"
	"smartpark/internal/pkg/errs"
)

var ErrNegativeRate = errs.New("tariff rate cannot be negative")

// Monetary amounts are rounded to cents, quantities (hours, kWh) to three
// decimals, both half away from zero. math.Round rounds half away from
// zero, which matches the settlement rules exactly.

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func RoundQuantity(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Rates are the effective unit prices used for one settlement.
type Rates struct {
	ParkingPerHour float64
	EnergyPerKWh   float64
}

func NewRates(parkingPerHour, energyPerKWh float64) (Rates, error) {
	if parkingPerHour < 0 || energyPerKWh < 0 {
		return Rates{}, ErrNegativeRate
	}
	return Rates{ParkingPerHour: parkingPerHour, EnergyPerKWh: energyPerKWh}, nil
}

// Discounted returns the rates after applying a premium account's
// discounts. Base tier accounts always pay list price regardless of any
// stored discount fractions.
func (r Rates) Discounted(tier user.Tier, parking, energy *user.Discount) Rates {
	if tier != user.TierPremium {
		return r
	}
	out := r
	if parking != nil && !parking.IsZero() {
		out.ParkingPerHour = parking.Apply(out.ParkingPerHour)
	}
	if energy != nil && !energy.IsZero() {
		out.EnergyPerKWh = energy.Apply(out.EnergyPerKWh)
	}
	return out
}

type LineType string

const (
	LineParking  LineType = "Parking"
	LineCharging LineType = "Charging"
)

type Line struct {
	Type      LineType
	Quantity  float64
	UnitPrice float64
	Total     float64
}

// Invoice is the settlement summary for one parking session: elapsed
// time, energy delivered by finished charge jobs, and the resulting
// costs at the given rates.
type Invoice struct {
	TotalMinutes int
	TotalHours   float64
	EnergyKWh    float64
	Rates        Rates
	ParkingCost  float64
	EnergyCost   float64
	Total        float64
}

// Compute derives the invoice for a session started at start, settled at
// now, with energyKWh summed over finished jobs only. Elapsed time never
// goes negative (clock skew on the session start is treated as zero).
func Compute(start, now time.Time, energyKWh float64, rates Rates) Invoice {
	minutes := int(math.Max(0, now.Sub(start).Minutes()))
	hours := float64(minutes) / 60.0
	energy := RoundQuantity(energyKWh)

	parkingCost := RoundMoney(hours * rates.ParkingPerHour)
	energyCost := RoundMoney(energy * rates.EnergyPerKWh)

	return Invoice{
		TotalMinutes: minutes,
		TotalHours:   hours,
		EnergyKWh:    energy,
		Rates:        rates,
		ParkingCost:  parkingCost,
		EnergyCost:   energyCost,
		Total:        RoundMoney(parkingCost + energyCost),
	}
}

// Lines expands the invoice into payment lines: parking is always
// billed, charging only when it actually cost something.
func (inv Invoice) Lines() []Line {
	lines := []Line{
		{
			Type:      LineParking,
			Quantity:  RoundQuantity(inv.TotalHours),
			UnitPrice: inv.Rates.ParkingPerHour,
			Total:     inv.ParkingCost,
		},
	}
	if inv.EnergyCost > 0 && inv.EnergyKWh > 0 {
		lines = append(lines, Line{
			Type:      LineCharging,
			Quantity:  RoundQuantity(inv.EnergyKWh),
			UnitPrice: inv.Rates.EnergyPerKWh,
			Total:     inv.EnergyCost,
		})
	}
	return lines
}
