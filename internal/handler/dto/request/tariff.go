package request

import (
	"time"

	"smartpark/internal/usecase/commands"
)

type PublishTariffRequest struct {
	ParkingPerHour float64    `json:"parking_per_hour" binding:"min=0"`
	EnergyPerKWh   float64    `json:"energy_per_kwh" binding:"min=0"`
	EffectiveFrom  *time.Time `json:"effective_from,omitempty"`
}

func (r PublishTariffRequest) ToCommand() commands.PublishTariffRequest {
	return commands.PublishTariffRequest{
		ParkingPerHour: r.ParkingPerHour,
		EnergyPerKWh:   r.EnergyPerKWh,
		EffectiveFrom:  r.EffectiveFrom,
	}
}
