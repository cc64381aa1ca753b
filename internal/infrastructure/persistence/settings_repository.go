package persistence

import (
	"context"
	"errors"

	"github.com/pharmaledger/backend/internal/domain/settings"
	"gorm.io/gorm"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load returns the settings row, creating the default one on first access
func (r *GormSettingsRepository) Load(ctx context.Context) (*settings.Settings, error) {
	var s settings.Settings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := settings.NewDefaultSettings()
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}

// Save persists the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Ensure GormSettingsRepository implements Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
