package events

import "time"

const (
	LeaveStatusChangedTopic = "hr.leave.status.v1"
	LeaveStatusChangedType  = "leave.status_changed"
)

type LeaveStatusChangedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    uint      `json:"leave_id"`
	UserID     uint      `json:"user_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	DecidedBy  uint      `json:"decided_by"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}
