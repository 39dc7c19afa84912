package repository

import (
	"context"

	"github.com/sangkips/cueclub-api/internal/domain/entity"
)

// SettingsRepository defines the interface for venue settings data access
type SettingsRepository interface {
	// Get returns the settings row, nil when none exists yet.
	Get(ctx context.Context) (*entity.VenueSettings, error)
	Create(ctx context.Context, settings *entity.VenueSettings) error
	Update(ctx context.Context, settings *entity.VenueSettings) error
}
