package payroll

import (
	"context"
	"database/sql"

	"go-hrops/internal/shared/dbutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindByID(ctx context.Context, id uint) (*Payroll, error)
	// LockByID row-locks the payroll for the rest of the transaction so
	// status changes apply one at a time.
	LockByID(ctx context.Context, id uint) (*Payroll, error)
	FindByUserAndMonth(ctx context.Context, userID uint, month string) (*Payroll, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Payroll, error)
	Update(ctx context.Context, p *Payroll) error
	UserExists(ctx context.Context, userID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbutil.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Payroll, error) {
	var p Payroll
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) LockByID(ctx context.Context, id uint) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByUserAndMonth(ctx context.Context, userID uint, month string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("month = ?", month).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Payroll, error) {
	var payrolls []Payroll
	q := r.db.WithContext(ctx)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Month != "" {
		q = q.Where("month = ?", filter.Month)
	}
	err := q.Order("created_at DESC, id DESC").Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("users").Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}
