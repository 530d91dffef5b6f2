package response

import (
	"github.com/google/uuid"

	"smartpark/internal/usecase/commands"
)

type ChargeRequestCreatedResponse struct {
	RequestID            uuid.UUID `json:"request_id"`
	EstWaitMinutes       int       `json:"est_wait_minutes"`
	EstCompletionMinutes int       `json:"est_completion_minutes"`
}

func FromProposeResult(r *commands.ProposeChargeResult) *ChargeRequestCreatedResponse {
	return &ChargeRequestCreatedResponse{
		RequestID:            r.RequestID,
		EstWaitMinutes:       r.EstWaitMinutes,
		EstCompletionMinutes: r.EstCompletionMinutes,
	}
}

type JobCreatedResponse struct {
	JobID uuid.UUID `json:"job_id"`
}

type JobStartedResponse struct {
	JobID     uuid.UUID `json:"job_id"`
	RequestID uuid.UUID `json:"request_id"`
	SpotID    uuid.UUID `json:"spot_id"`
}

func FromStartedJob(r *commands.StartedJobResult) *JobStartedResponse {
	return &JobStartedResponse{
		JobID:     r.JobID,
		RequestID: r.RequestID,
		SpotID:    r.SpotID,
	}
}
