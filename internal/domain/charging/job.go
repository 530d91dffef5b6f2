package charging

import (
	"time"

	"github.com/google/uuid"
)

// ChargeJob is the unit of work the bot executes for an accepted
// request. Jobs are served strictly one at a time.
type ChargeJob struct {
	id        uuid.UUID
	requestID uuid.UUID
	status    JobStatus
	startUtc  *time.Time
	endUtc    *time.Time
	energyKWh *float64
	finalSoC  *int
}

func NewChargeJob(requestID uuid.UUID) *ChargeJob {
	return &ChargeJob{
		id:        uuid.New(),
		requestID: requestID,
		status:    JobQueued,
	}
}

func ReconstructChargeJob(id, requestID uuid.UUID, status JobStatus, startUtc, endUtc *time.Time, energyKWh *float64, finalSoC *int) *ChargeJob {
	return &ChargeJob{
		id:        id,
		requestID: requestID,
		status:    status,
		startUtc:  startUtc,
		endUtc:    endUtc,
		energyKWh: energyKWh,
		finalSoC:  finalSoC,
	}
}

func (j *ChargeJob) ID() uuid.UUID        { return j.id }
func (j *ChargeJob) RequestID() uuid.UUID { return j.requestID }
func (j *ChargeJob) Status() JobStatus    { return j.status }
func (j *ChargeJob) StartUtc() *time.Time { return j.startUtc }
func (j *ChargeJob) EndUtc() *time.Time   { return j.endUtc }
func (j *ChargeJob) EnergyKWh() *float64  { return j.energyKWh }
func (j *ChargeJob) FinalSoC() *int       { return j.finalSoC }

// Start moves a queued job to running and stamps the start time. The
// caller is responsible for acquiring the bot first.
func (j *ChargeJob) Start(now time.Time) error {
	if j.status != JobQueued {
		return ErrInvalidTransition
	}
	j.status = JobRunning
	j.startUtc = &now
	return nil
}

// Finish records the delivered energy and final state of charge and
// moves the job to finished.
func (j *ChargeJob) Finish(now time.Time, energyKWh float64, finalSoC int) error {
	if j.status != JobRunning {
		return ErrInvalidTransition
	}
	if energyKWh < 0 {
		return ErrInvalidMeasurement
	}
	if finalSoC < 0 || finalSoC > 100 {
		return ErrInvalidMeasurement
	}
	j.status = JobFinished
	j.endUtc = &now
	j.energyKWh = &energyKWh
	j.finalSoC = &finalSoC
	return nil
}

// Abort terminates a queued or running job. The end time is stamped
// only when the job had actually been started.
func (j *ChargeJob) Abort(now time.Time) error {
	if !j.status.Abortable() {
		return ErrInvalidTransition
	}
	wasRunning := j.status == JobRunning
	j.status = JobAborted
	if wasRunning {
		j.endUtc = &now
	}
	return nil
}
