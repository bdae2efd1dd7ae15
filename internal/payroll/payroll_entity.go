package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payroll struct {
	ID     uint   `gorm:"column:id;primaryKey;autoIncrement"`
	UserID uint   `gorm:"column:user_id;not null;uniqueIndex:uq_payroll_user_month,priority:1"`
	Month  string `gorm:"column:month;type:varchar(20);not null;uniqueIndex:uq_payroll_user_month,priority:2"`

	// Amount is exact; never round-trip it through float64.
	Amount decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`

	Status    Status     `gorm:"column:status;type:varchar(20);not null;default:'Pending'"`
	PaidAt    *time.Time `gorm:"column:paid_at"`
	CreatedBy uint       `gorm:"column:created_by;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Payroll) TableName() string {
	return "payrolls"
}
