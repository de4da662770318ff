package repository

import (
	"context"
	"errors"

	"github.com/jvintimilla/logia-api/internal/models"
	"gorm.io/gorm"
)

// SettingRepository defines the interface for lodge settings access
type SettingRepository interface {
	// Get returns the settings row, creating it with the given defaults on
	// first access
	Get(ctx context.Context, defaults *models.Setting) (*models.Setting, error)
	Update(ctx context.Context, setting *models.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, defaults *models.Setting) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Update(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}
