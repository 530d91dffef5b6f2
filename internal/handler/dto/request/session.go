package request

import (
	"github.com/google/uuid"

	"smartpark/internal/usecase/commands"
)

type OpenSessionRequest struct {
	SpotID uuid.UUID `json:"spot_id" binding:"required"`
	CarID  uuid.UUID `json:"car_id" binding:"required"`
}

func (r OpenSessionRequest) ToCommand() commands.OpenSessionRequest {
	return commands.OpenSessionRequest{
		SpotID: r.SpotID,
		CarID:  r.CarID,
	}
}
