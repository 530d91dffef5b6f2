package request

import (
	"smartpark/internal/usecase/commands"
)

type ProposeChargeRequest struct {
	TargetSoC  int  `json:"target_soc" binding:"required,min=1,max=100"`
	InitialSoC *int `json:"initial_soc,omitempty" binding:"omitempty,min=0,max=100"`
}

func (r ProposeChargeRequest) ToCommand() commands.ProposeChargeRequest {
	return commands.ProposeChargeRequest{
		TargetSoC:  r.TargetSoC,
		InitialSoC: r.InitialSoC,
	}
}

type FinishChargeJobRequest struct {
	EnergyKWh float64 `json:"energy_kwh" binding:"min=0"`
	FinalSoC  int     `json:"final_soc" binding:"min=0,max=100"`
}

func (r FinishChargeJobRequest) ToCommand() commands.FinishChargeRequest {
	return commands.FinishChargeRequest{
		EnergyKWh: r.EnergyKWh,
		FinalSoC:  r.FinalSoC,
	}
}
