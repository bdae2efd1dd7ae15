package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedEvent = errors.New("malformed event")

// Topics lists every topic the notification consumer subscribes to.
func Topics() []string {
	return []string{LeaveStatusChangedTopic, PayrollStatusChangedTopic}
}

// Header is the part shared by every status event; it is enough to route
// and dedupe a message before decoding the full payload.
type Header struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	UserID    uint   `json:"user_id"`
}

func DecodeHeader(payload []byte) (Header, error) {
	var h Header
	if err := json.Unmarshal(payload, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if h.EventID == "" || h.EventType == "" {
		return Header{}, fmt.Errorf("%w: missing id or type", ErrMalformedEvent)
	}
	return h, nil
}
