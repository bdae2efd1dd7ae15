package notification

import (
	"encoding/json"
	"fmt"

	"go-hrops/internal/events"
)

// fromEvent renders a stored notification from a raw status event.
func fromEvent(payload []byte) (*Notification, error) {
	header, err := events.DecodeHeader(payload)
	if err != nil {
		return nil, err
	}
	if header.UserID == 0 {
		return nil, fmt.Errorf("%w: event %s has no user_id", events.ErrMalformedEvent, header.EventID)
	}

	n := &Notification{
		UserID:    header.UserID,
		EventID:   header.EventID,
		EventType: header.EventType,
	}

	switch header.EventType {
	case events.LeaveStatusChangedType:
		var ev events.LeaveStatusChangedEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", events.ErrMalformedEvent, err)
		}
		n.Title = fmt.Sprintf("Leave request %s", ev.ToStatus)
		n.Message = fmt.Sprintf("Your leave request for %s to %s was %s.", ev.From, ev.To, ev.ToStatus)
	case events.PayrollStatusChangedType:
		var ev events.PayrollStatusChangedEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", events.ErrMalformedEvent, err)
		}
		n.Title = fmt.Sprintf("Payroll %s", ev.ToStatus)
		n.Message = fmt.Sprintf("Your payroll for %s (%s) is now %s.", ev.Month, ev.Amount, ev.ToStatus)
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", events.ErrMalformedEvent, header.EventType)
	}
	return n, nil
}
