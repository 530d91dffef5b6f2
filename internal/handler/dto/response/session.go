package response

import (
	"github.com/google/uuid"

	"smartpark/internal/usecase/commands"
)

type SessionCreatedResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

type InvoiceLineResponse struct {
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

type CheckoutResponse struct {
	PaymentID    uuid.UUID             `json:"payment_id"`
	SessionID    uuid.UUID             `json:"session_id"`
	TotalMinutes int                   `json:"total_minutes"`
	EnergyKWh    float64               `json:"energy_kwh"`
	ParkingCost  float64               `json:"parking_cost"`
	EnergyCost   float64               `json:"energy_cost"`
	Total        float64               `json:"total"`
	Lines        []InvoiceLineResponse `json:"lines"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	lines := make([]InvoiceLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, InvoiceLineResponse{
			Type:      string(l.Type),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
		})
	}
	return &CheckoutResponse{
		PaymentID:    r.PaymentID,
		SessionID:    r.SessionID,
		TotalMinutes: r.Invoice.TotalMinutes,
		EnergyKWh:    r.Invoice.EnergyKWh,
		ParkingCost:  r.Invoice.ParkingCost,
		EnergyCost:   r.Invoice.EnergyCost,
		Total:        r.Invoice.Total,
		Lines:        lines,
	}
}
