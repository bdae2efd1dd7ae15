package events

import "time"

const (
	PayrollStatusChangedTopic = "hr.payroll.status.v1"
	PayrollStatusChangedType  = "payroll.status_changed"
)

type PayrollStatusChangedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PayrollID  uint      `json:"payroll_id"`
	UserID     uint      `json:"user_id"`
	Month      string    `json:"month"`
	Amount     string    `json:"amount"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  uint      `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
