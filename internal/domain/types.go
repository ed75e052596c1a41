package domain

// SubmissionState tracks one filter submission. Every submission starts at
// StateAwaitingSubmission and ends in either StateRendered or StateFailed.
type SubmissionState string

const (
	StateAwaitingSubmission SubmissionState = "awaiting_submission"
	StateRendered           SubmissionState = "rendered"
	StateFailed             SubmissionState = "failed"
)

// Terminal reports whether s ends a submission cycle.
func (s SubmissionState) Terminal() bool {
	return s == StateRendered || s == StateFailed
}

// RequestContext carries authenticated admin info when available.
type RequestContext struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}
