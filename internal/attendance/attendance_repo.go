package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrops/internal/shared/dbutil"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id uint) (*Attendance, error)
	FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Attendance, error) {
	var a Attendance
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	var rows []Attendance
	q := r.db.WithContext(ctx)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Date != nil {
		q = q.Where("date = ?", *filter.Date)
	}
	err := q.Order("date DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("users").Where("id = ?", userID).Count(&n).Error
	return n > 0, err
}
