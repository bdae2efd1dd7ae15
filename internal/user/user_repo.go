package user

import (
	"context"
	"database/sql"
	"strings"

	"go-hrops/internal/domain"
	"go-hrops/internal/shared/dbutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindAll returns every user, or only userID when it is non-nil.
	FindAll(ctx context.Context, userID *uint) ([]User, error)
	Count(ctx context.Context) (int64, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	// LockByID loads the user with SELECT ... FOR UPDATE. Only meaningful inside WithTx.
	LockByID(ctx context.Context, id uint) (*User, error)
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, userID *uint) ([]User, error) {
	var users []User
	q := r.db.WithContext(ctx).Order("id ASC")
	if userID != nil {
		q = q.Where("id = ?", *userID)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, err
}

func (r *repository) UpdateRole(ctx context.Context, id uint, role domain.Role) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) LockByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
