package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePayrollRequest struct {
	UserID uint             `json:"user_id" binding:"required,gt=0"`
	Month  string           `json:"month" binding:"required,max=20"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Status *string          `json:"status"`
}

type UpdatePayrollStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilter struct {
	UserID *uint
	Month  string
}

type PayrollResponse struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Month     string     `json:"month"`
	Amount    string     `json:"amount"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedBy uint       `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func mapToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Month:     p.Month,
		Amount:    p.Amount.StringFixed(2),
		Status:    string(p.Status),
		PaidAt:    p.PaidAt,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp
}

// maxAmount is the first value numeric(12,2) cannot hold.
var maxAmount = decimal.New(1, 10)

func validAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(maxAmount) && d.Equal(d.Round(2))
}
