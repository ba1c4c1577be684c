package audit

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink persists audit events into the validation_events table.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink instantiates the sink.
func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool}
}

// Record inserts the event.
func (s *PostgresSink) Record(ctx context.Context, event Event) error {
	if s.pool == nil {
		return errors.New("postgres pool not configured")
	}
	const query = `
        INSERT INTO validation_events (
            id, occurred_at, system_name, ticket_id, status, reason,
            safe, object_name, policy_id, connection_address, account,
            requesting_user, first_name, email,
            dual_control, dual_control_confirmed, emergency
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err := s.pool.Exec(ctx, query,
		event.ID,
		event.OccurredAt,
		event.System,
		event.TicketID,
		event.Status,
		event.Reason,
		event.Safe,
		event.Object,
		event.Policy,
		event.ConnectionAddress,
		event.Account,
		event.User,
		event.FirstName,
		event.Email,
		event.DualControl,
		event.DualControlConfirmed,
		event.Emergency,
	)
	return err
}
