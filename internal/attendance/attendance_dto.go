package attendance

import "time"

const dateLayout = "2006-01-02"

type CreateAttendanceRequest struct {
	UserID   *uint      `json:"user_id" binding:"omitempty,gt=0"`
	Date     string     `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Status   *string    `json:"status"`
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
}

type UpdateAttendanceRequest struct {
	CheckOut *time.Time `json:"check_out"`
	Status   *string    `json:"status"`
}

type ListFilter struct {
	UserID *uint
	Date   *time.Time
}

type AttendanceResponse struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Date      string     `json:"date"`
	Status    string     `json:"status"`
	CheckIn   *time.Time `json:"check_in,omitempty"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date.Format(dateLayout),
		Status:    string(a.Status),
		CheckIn:   a.CheckIn,
		CheckOut:  a.CheckOut,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
