package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Get returns gorm.ErrRecordNotFound until settings were saved once.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := r.db.WithContext(ctx).First(&s, "id = ?", singletonID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Save(ctx context.Context, s *Settings) error {
	s.ID = singletonID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}
