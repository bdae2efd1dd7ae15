package leave

import (
	"context"
	"database/sql"

	"go-hrops/internal/shared/dbutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// LockUser takes a row lock on the owning user so concurrent requests
	// for the same user serialize. Returns gorm.ErrRecordNotFound for an
	// unknown user.
	LockUser(ctx context.Context, userID uint) error
	FindActiveRanges(ctx context.Context, userID uint) ([]DateRange, error)
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id uint) (*Leave, error)
	// LockByID is FindByID with SELECT ... FOR UPDATE, so two decisions on
	// the same request cannot both see Pending. Only meaningful inside WithTx.
	LockByID(ctx context.Context, id uint) (*Leave, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
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

func (r *repository) LockUser(ctx context.Context, userID uint) error {
	var row struct{ ID uint }
	return r.db.WithContext(ctx).
		Table("users").
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		Take(&row).Error
}

func (r *repository) FindActiveRanges(ctx context.Context, userID uint) ([]DateRange, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Select("from_date", "to_date").
		Where("user_id = ?", userID).
		Where("status <> ?", StatusRejected).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ranges := make([]DateRange, len(rows))
	for i, l := range rows {
		ranges[i] = l.Range()
	}
	return ranges, nil
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Leave, error) {
	var l Leave
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) LockByID(ctx context.Context, id uint) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Leave, error) {
	var leaves []Leave
	q := r.db.WithContext(ctx)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	err := q.Order("from_date DESC, id DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}
