package leave

import "time"

const dateLayout = "2006-01-02"

type CreateLeaveRequest struct {
	UserID *uint   `json:"user_id" binding:"omitempty,gt=0"`
	Reason string  `json:"reason" binding:"required,max=1000"`
	From   string  `json:"from" binding:"required"`
	To     string  `json:"to" binding:"required"`
	Status *string `json:"status"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilter struct {
	UserID *uint
	Status *Status
}

type LeaveResponse struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Reason    string     `json:"reason"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Status    string     `json:"status"`
	DecidedBy *uint      `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func mapToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Reason:    l.Reason,
		From:      l.FromDate.Format(dateLayout),
		To:        l.ToDate.Format(dateLayout),
		Status:    string(l.Status),
		DecidedBy: l.DecidedBy,
		DecidedAt: l.DecidedAt,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
