package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/cueclub-api/internal/config"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultSettings builds the initial venue settings row from configuration.
func DefaultSettings(cfg *config.Config) *entity.VenueSettings {
	policy := billing.RoundingPolicy{
		Step:         cfg.Billing.RoundingStep,
		Mode:         enum.RoundingMode(cfg.Billing.RoundingMode),
		GraceMinutes: cfg.Billing.GraceMinutes,
	}.Normalize()
	if !policy.Mode.IsValid() {
		policy.Mode = enum.RoundingModeCeil
	}
	if policy.GraceMinutes < 0 {
		policy.GraceMinutes = 0
	}

	paper := entity.Paper80mm
	if cfg.Printer.CharWidth > 0 && cfg.Printer.CharWidth <= 32 {
		paper = entity.Paper58mm
	}

	return &entity.VenueSettings{
		Name:         cfg.Venue.Name,
		Currency:     cfg.Venue.Currency,
		Timezone:     cfg.Venue.Timezone,
		RoundingStep: policy.Step,
		RoundingMode: policy.Mode,
		GraceMinutes: policy.GraceMinutes,
		PaperSize:    paper,
		PrintCopies:  1,
	}
}

// SeedDefaultData creates the venue settings row and the admin account when
// they do not exist yet.
func SeedDefaultData(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	log.Info("seeding default data")

	var settings entity.VenueSettings
	err := db.First(&settings).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(DefaultSettings(cfg)).Error; err != nil {
			return fmt.Errorf("failed to create venue settings: %w", err)
		}
		log.Info("venue settings created", zap.String("venue", cfg.Venue.Name))
	case err != nil:
		return fmt.Errorf("failed to read venue settings: %w", err)
	}

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	var admin entity.User
	err = db.Where("email = ?", cfg.Admin.Email).First(&admin).Error
	if err == nil {
		log.Info("admin user already exists", zap.String("email", cfg.Admin.Email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin = entity.User{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: string(hashed),
		Role:     enum.StaffRoleAdmin,
		Active:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Warn("failed to create admin user", zap.String("email", cfg.Admin.Email), zap.Error(err))
		return nil
	}
	log.Info("admin user created", zap.String("email", cfg.Admin.Email))
	return nil
}
