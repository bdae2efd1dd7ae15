package attendance

import (
	"context"
	"strings"
	"time"

	attendanceerrors "go-hrops/internal/attendance/errors"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half Day"
	StatusLeave   Status = "Leave"
)

var statuses = []Status{StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave}

func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", attendanceerrors.ErrInvalidStatus
}

const (
	DefaultFullDayHours    = 8.0
	DefaultHalfDayMinHours = 4.0
)

// Thresholds are the worked-hour cut-offs, both inclusive lower bounds.
type Thresholds struct {
	FullDayHours    float64 `json:"full_day_hours"`
	HalfDayMinHours float64 `json:"half_day_min_hours"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{FullDayHours: DefaultFullDayHours, HalfDayMinHours: DefaultHalfDayMinHours}
}

func (t Thresholds) normalized() Thresholds {
	if t.FullDayHours <= 0 {
		t.FullDayHours = DefaultFullDayHours
	}
	if t.HalfDayMinHours <= 0 {
		t.HalfDayMinHours = DefaultHalfDayMinHours
	}
	return t
}

// ThresholdSource supplies the thresholds in force right now.
type ThresholdSource interface {
	Thresholds(ctx context.Context) (Thresholds, error)
}

// ComputeStatus derives the day's status from the worked interval. A missing
// check-out means the employee is still on shift and counts as Present.
func ComputeStatus(checkIn time.Time, checkOut *time.Time, th Thresholds) (Status, error) {
	if checkOut == nil {
		return StatusPresent, nil
	}
	if checkOut.Before(checkIn) {
		return "", attendanceerrors.ErrInvalidInterval
	}

	th = th.normalized()
	worked := checkOut.Sub(checkIn).Hours()

	switch {
	case worked >= th.FullDayHours:
		return StatusPresent, nil
	case worked >= th.HalfDayMinHours:
		return StatusHalfDay, nil
	default:
		return StatusAbsent, nil
	}
}
