package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gate/internal/domain"
)

// Event is one validation decision as recorded to the audit sinks.
type Event struct {
	ID                   string
	OccurredAt           time.Time
	System               string
	TicketID             string
	Status               string
	Reason               string
	Safe                 string
	Object               string
	Policy               string
	ConnectionAddress    string
	Account              string
	User                 string
	FirstName            string
	Email                string
	DualControl          bool
	DualControlConfirmed bool
	Emergency            bool
}

// NewEvent assembles an audit event from a request and its result.
func NewEvent(id string, req *domain.ValidationRequest, result *domain.ValidationResult) Event {
	ticketID := result.TicketID
	if ticketID == "" {
		ticketID = req.TicketID
	}
	return Event{
		ID:                   id,
		OccurredAt:           time.Now(),
		System:               req.SystemName,
		TicketID:             ticketID,
		Status:               result.Outcome,
		Reason:               req.Reason,
		Safe:                 req.Safe,
		Object:               req.Object,
		Policy:               req.PolicyID,
		ConnectionAddress:    req.ConnectionAddress(),
		Account:              req.Username,
		User:                 req.RequestingUser,
		FirstName:            req.RequesterName,
		Email:                req.Email,
		DualControl:          req.DualControl,
		DualControlConfirmed: req.DualControlRequestConfirmed,
		Emergency:            result.EmergencyMode,
	}
}

// Sink persists audit events.
type Sink interface {
	Record(ctx context.Context, event Event) error
}

// Recorder fans an event out to every configured sink. Sink failures are
// logged and never surface to the caller: auditing is a best-effort side
// effect of a decision already made.
type Recorder struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewRecorder builds a recorder over the given sinks.
func NewRecorder(logger *zap.Logger, sinks ...Sink) *Recorder {
	return &Recorder{sinks: sinks, logger: logger}
}

// Record delivers the event to every sink.
func (r *Recorder) Record(ctx context.Context, event Event) {
	if r == nil {
		return
	}
	for _, sink := range r.sinks {
		if err := sink.Record(ctx, event); err != nil {
			r.logger.Warn("audit sink failed",
				zap.String("event_id", event.ID),
				zap.String("ticket_id", event.TicketID),
				zap.Error(err))
		}
	}
}
