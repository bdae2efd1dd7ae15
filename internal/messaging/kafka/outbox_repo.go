package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows exhausted MaxDeliveryAttempts and are no longer polled.
	OutboxStatusDead = "dead"
)

const (
	MaxDeliveryAttempts = 10
	// width of outbox_events.error_message kept by MarkFailed
	maxErrorLength = 500
)

// outboxColumns is shared by every read so scanOutboxEvent stays in sync.
const outboxColumns = `id::text, COALESCE(request_id, ''), aggregate_type, aggregate_id,
	event_type, topic, payload, status, retry_count, COALESCE(next_retry_at, created_at)`

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewPendingEvent marshals payload into a pending outbox row. id doubles as
// the event id consumers dedupe on.
func NewPendingEvent(id, requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            id,
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

type OutboxRepository interface {
	// WithTx binds Create to the caller's transaction so the event commits
	// together with the status change that produced it.
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed records the error and schedules a retry, or parks the row as
	// dead once MaxDeliveryAttempts is reached.
	MarkFailed(ctx context.Context, id string, reason string) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	_, err := r.conn().ExecContext(ctx,
		`INSERT INTO outbox_events
			(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)`,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event %s: %w", event.ID, err)
	}
	return nil
}

// ListPending returns pending and retryable rows whose backoff has elapsed,
// oldest first. Dead rows are never returned.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+outboxColumns+`
		FROM outbox_events
		WHERE status IN ($1, $2)
			AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY created_at
		LIMIT $3`,
		OutboxStatusPending, OutboxStatusFailed, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	due := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		e, err := scanOutboxEvent(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, e)
	}
	return due, rows.Err()
}

func scanOutboxEvent(rows *sql.Rows) (OutboxEvent, error) {
	var e OutboxEvent
	err := rows.Scan(
		&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
		&e.EventType, &e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt,
	)
	return e, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events
		SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
		WHERE id = $1`,
		id, OutboxStatusSent,
	)
	return err
}

// Backoff grows by 15s per attempt, capped at 150s.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > maxErrorLength {
		reason = reason[:maxErrorLength]
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events
		SET status = CASE WHEN retry_count + 1 >= $4 THEN $5 ELSE $2 END,
			retry_count = retry_count + 1,
			error_message = $3,
			next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
			updated_at = NOW()
		WHERE id = $1`,
		id, OutboxStatusFailed, reason, MaxDeliveryAttempts, OutboxStatusDead,
	)
	return err
}

func ValidateOutboxEvent(event OutboxEvent) error {
	switch {
	case event.ID == "":
		return errors.New("outbox id is required")
	case event.Topic == "":
		return errors.New("outbox topic is required")
	case event.EventType == "":
		return errors.New("outbox event type is required")
	case len(event.Payload) == 0:
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed, OutboxStatusDead:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
