package attendance

import "time"

type Attendance struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    uint       `gorm:"column:user_id;not null;uniqueIndex:uq_attendance_user_date,priority:1"`
	Date      time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_user_date,priority:2"`
	Status    Status     `gorm:"column:status;type:varchar(20);not null"`
	CheckIn   *time.Time `gorm:"column:check_in"`
	CheckOut  *time.Time `gorm:"column:check_out"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}
