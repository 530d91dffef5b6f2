package request

import (
	"smartpark/internal/usecase/commands"
)

type UpdateUserRatesRequest struct {
	Tier            string   `json:"tier" binding:"required,oneof=base premium"`
	ParkingDiscount *float64 `json:"parking_discount,omitempty" binding:"omitempty,min=0,max=1"`
	EnergyDiscount  *float64 `json:"energy_discount,omitempty" binding:"omitempty,min=0,max=1"`
}

func (r UpdateUserRatesRequest) ToCommand() commands.UpdateUserRatesRequest {
	return commands.UpdateUserRatesRequest{
		Tier:            r.Tier,
		ParkingDiscount: r.ParkingDiscount,
		EnergyDiscount:  r.EnergyDiscount,
	}
}
