package notification

import "time"

type NotificationResponse struct {
	ID        uint       `json:"id"`
	EventType string     `json:"event_type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		EventType: n.EventType,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.ReadAt != nil,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
