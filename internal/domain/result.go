package domain

import (
	"fmt"
	"time"
)

// Outcome strings recorded to the audit sinks.
const (
	OutcomeValidated      = "Validated Successfully"
	OutcomeFailed         = "Failed to Validate"
	OutcomeCreated        = "Created Successfully"
	OutcomeCreationFailed = "Failed to Create"
)

// ValidationResult is the terminal output of one validation call. The audit
// trail is an append-only narrative accumulated across pipeline stages; the
// user message is set only on failure paths, except where a later check
// deliberately overwrites an earlier one.
type ValidationResult struct {
	Valid         bool
	TicketID      string
	UserMessage   string
	AuditTrail    string
	Outcome       string
	EmergencyMode bool
	StartTime     *time.Time
	EndTime       *time.Time
}

// NewValidationResult seeds the result with the request audit prefix.
func NewValidationResult(req *ValidationRequest) *ValidationResult {
	return &ValidationResult{
		AuditTrail: fmt.Sprintf("Input=%s | DualControl=%t | DualControlRequestConfirmed=%t |",
			req.TicketID, req.DualControl, req.DualControlRequestConfirmed),
		Outcome: OutcomeFailed,
	}
}

// AppendAudit adds to the accumulated audit narrative.
func (r *ValidationResult) AppendAudit(format string, args ...any) {
	r.AuditTrail += fmt.Sprintf(format, args...)
}

// Fail records a failure message; the overall decision stays false.
func (r *ValidationResult) Fail(format string, args ...any) {
	r.Valid = false
	r.UserMessage = fmt.Sprintf(format, args...)
}
