package response

import (
	"github.com/google/uuid"
)

type TariffCreatedResponse struct {
	TariffID uuid.UUID `json:"tariff_id"`
}
