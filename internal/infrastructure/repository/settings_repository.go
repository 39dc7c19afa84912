package repository

import (
	"context"
	"errors"

	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the venue settings row
func (r *settingsRepository) Get(ctx context.Context) (*entity.VenueSettings, error) {
	var settings entity.VenueSettings
	err := dbFrom(ctx, r.db).Order("created_at ASC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Create creates the venue settings row
func (r *settingsRepository) Create(ctx context.Context, settings *entity.VenueSettings) error {
	return dbFrom(ctx, r.db).Create(settings).Error
}

// Update updates the venue settings row
func (r *settingsRepository) Update(ctx context.Context, settings *entity.VenueSettings) error {
	return dbFrom(ctx, r.db).Save(settings).Error
}
