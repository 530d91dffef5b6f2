package charging

// Request and job statuses form two small state machines:
//
//	request: proposed -> pending | cancelled
//	         pending  -> in_progress | cancelled
//	         in_progress -> completed | cancelled
//	job:     queued  -> running | aborted
//	         running -> finished | aborted
//
// completed/cancelled and finished/aborted are terminal. Transitions are
// only performed through the entity methods below, which reject illegal
// moves instead of relying on call-site status checks.

type RequestStatus string

const (
	RequestProposed   RequestStatus = "proposed"
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in_progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

// Unresolved reports whether the request still occupies its session's
// single active-request slot.
func (s RequestStatus) Unresolved() bool {
	switch s {
	case RequestProposed, RequestPending, RequestInProgress:
		return true
	default:
		return false
	}
}

type JobStatus string

const (
	JobQueued   JobStatus = "queued"
	JobRunning  JobStatus = "running"
	JobFinished JobStatus = "finished"
	JobAborted  JobStatus = "aborted"
)

func (s JobStatus) Abortable() bool {
	return s == JobQueued || s == JobRunning
}
