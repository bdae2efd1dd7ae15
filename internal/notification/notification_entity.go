package notification

import "time"

type Notification struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    uint       `gorm:"column:user_id;not null;index:idx_notifications_user"`
	EventID   string     `gorm:"column:event_id;type:varchar(64);not null;uniqueIndex:uq_notifications_event"`
	EventType string     `gorm:"column:event_type;type:varchar(64);not null"`
	Title     string     `gorm:"column:title;type:varchar(200);not null"`
	Message   string     `gorm:"column:message;type:text;not null"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
