package leave

import "time"

type Leave struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    uint       `gorm:"column:user_id;not null;index:idx_leaves_user_dates,priority:1"`
	Reason    string     `gorm:"column:reason;type:text;not null"`
	FromDate  time.Time  `gorm:"column:from_date;type:date;not null;index:idx_leaves_user_dates,priority:2"`
	ToDate    time.Time  `gorm:"column:to_date;type:date;not null;index:idx_leaves_user_dates,priority:3"`
	Status    Status     `gorm:"column:status;type:varchar(20);not null;default:'Pending'"`
	DecidedBy *uint      `gorm:"column:decided_by"`
	DecidedAt *time.Time `gorm:"column:decided_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Leave) TableName() string {
	return "leaves"
}

func (l Leave) Range() DateRange {
	return DateRange{From: l.FromDate, To: l.ToDate}
}
