package settings

import "time"

type UpdateSettingsRequest struct {
	FullDayHours    float64 `json:"full_day_hours" binding:"required,gt=0,lte=24"`
	HalfDayMinHours float64 `json:"half_day_min_hours" binding:"required,gt=0"`
	WorkdayStart    string  `json:"workday_start" binding:"required,clock"`
	WorkdayEnd      string  `json:"workday_end" binding:"required,clock"`
}

type SettingsResponse struct {
	FullDayHours    float64    `json:"full_day_hours"`
	HalfDayMinHours float64    `json:"half_day_min_hours"`
	WorkdayStart    string     `json:"workday_start"`
	WorkdayEnd      string     `json:"workday_end"`
	UpdatedBy       *uint      `json:"updated_by,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// Defaults apply until an Admin saves settings for the first time.
type Defaults struct {
	FullDayHours    float64
	HalfDayMinHours float64
	WorkdayStart    string
	WorkdayEnd      string
}

func mapToResponse(s Settings) SettingsResponse {
	resp := SettingsResponse{
		FullDayHours:    s.FullDayHours,
		HalfDayMinHours: s.HalfDayMinHours,
		WorkdayStart:    s.WorkdayStart,
		WorkdayEnd:      s.WorkdayEnd,
		UpdatedBy:       s.UpdatedBy,
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}
