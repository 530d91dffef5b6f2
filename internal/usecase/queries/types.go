package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type SessionView struct {
	ID              uuid.UUID  `json:"id"`
	SpotID          uuid.UUID  `json:"spot_id"`
	SpotLabel       string     `json:"spot_label"`
	CarID           uuid.UUID  `json:"car_id"`
	CarPlate        string     `json:"car_plate"`
	UserID          uuid.UUID  `json:"user_id"`
	StartUtc        time.Time  `json:"start_utc"`
	EndUtc          *time.Time `json:"end_utc,omitempty"`
	Status          string     `json:"status"`
	TotalMinutes    *int       `json:"total_minutes,omitempty"`
	ChargingMinutes *int       `json:"charging_minutes,omitempty"`
}

type SessionListItem struct {
	ID        uuid.UUID  `json:"id"`
	SpotLabel string     `json:"spot_label"`
	CarPlate  string     `json:"car_plate"`
	StartUtc  time.Time  `json:"start_utc"`
	EndUtc    *time.Time `json:"end_utc,omitempty"`
	Status    string     `json:"status"`
}

type InvoiceView struct {
	SessionID      uuid.UUID `json:"session_id"`
	StartUtc       time.Time `json:"start_utc"`
	AsOf           time.Time `json:"as_of"`
	TotalMinutes   int       `json:"total_minutes"`
	EnergyKWh      float64   `json:"energy_kwh"`
	ParkingPerHour float64   `json:"parking_per_hour"`
	EnergyPerKWh   float64   `json:"energy_per_kwh"`
	ParkingCost    float64   `json:"parking_cost"`
	EnergyCost     float64   `json:"energy_cost"`
	Total          float64   `json:"total"`
}

type ChargeRequestView struct {
	ID                   uuid.UUID `json:"id"`
	SessionID            uuid.UUID `json:"session_id"`
	TargetSoC            int       `json:"target_soc"`
	InitialSoC           *int      `json:"initial_soc,omitempty"`
	RequestedAt          time.Time `json:"requested_at"`
	Status               string    `json:"status"`
	EstWaitMinutes       *int      `json:"est_wait_minutes,omitempty"`
	EstCompletionMinutes *int      `json:"est_completion_minutes,omitempty"`
}

type ChargeJobView struct {
	ID        uuid.UUID  `json:"id"`
	RequestID uuid.UUID  `json:"request_id"`
	SessionID uuid.UUID  `json:"session_id"`
	SpotLabel string     `json:"spot_label"`
	Status    string     `json:"status"`
	StartUtc  *time.Time `json:"start_utc,omitempty"`
	EndUtc    *time.Time `json:"end_utc,omitempty"`
	EnergyKWh *float64   `json:"energy_kwh,omitempty"`
	FinalSoC  *int       `json:"final_soc,omitempty"`
}

type BotStatusView struct {
	CurrentSpotID  *uuid.UUID     `json:"current_spot_id,omitempty"`
	BatteryPercent *int           `json:"battery_percent,omitempty"`
	MaxPowerKW     float64        `json:"max_power_kw"`
	Busy           bool           `json:"busy"`
	LastUpdate     time.Time      `json:"last_update"`
	QueueLength    int            `json:"queue_length"`
	RunningJob     *ChargeJobView `json:"running_job,omitempty"`
}

type TariffView struct {
	ID             uuid.UUID  `json:"id"`
	ParkingPerHour float64    `json:"parking_per_hour"`
	EnergyPerKWh   float64    `json:"energy_per_kwh"`
	ValidFrom      time.Time  `json:"valid_from"`
	ValidTo        *time.Time `json:"valid_to,omitempty"`
}

type PaymentLineView struct {
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

type PaymentView struct {
	ID        uuid.UUID         `json:"id"`
	SessionID uuid.UUID         `json:"session_id"`
	UserID    uuid.UUID         `json:"user_id"`
	UserEmail string            `json:"user_email"`
	Tier      string            `json:"tier"`
	Total     float64           `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Lines     []PaymentLineView `json:"lines"`
}

type SpotView struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Floor int       `json:"floor"`
}

type CarView struct {
	ID                 uuid.UUID `json:"id"`
	Plate              string    `json:"plate"`
	ModelName          string    `json:"model_name"`
	BatteryCapacityKWh float64   `json:"battery_capacity_kwh"`
}
