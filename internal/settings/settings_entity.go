package settings

import "time"

// singletonID is the only row app_settings ever holds.
const singletonID = 1

type Settings struct {
	ID              uint      `gorm:"column:id;primaryKey"`
	FullDayHours    float64   `gorm:"column:full_day_hours;not null"`
	HalfDayMinHours float64   `gorm:"column:half_day_min_hours;not null"`
	WorkdayStart    string    `gorm:"column:workday_start;type:varchar(5);not null"`
	WorkdayEnd      string    `gorm:"column:workday_end;type:varchar(5);not null"`
	UpdatedBy       *uint     `gorm:"column:updated_by"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Settings) TableName() string {
	return "app_settings"
}
