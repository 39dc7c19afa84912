package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/pkg/apperror"
)

// SettingsService handles venue settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     entity.VenueSettings
}

// NewSettingsService creates a new settings service. defaults is the row
// written the first time settings are read.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults *entity.VenueSettings) *SettingsService {
	s := &SettingsService{settingsRepo: settingsRepo}
	if defaults != nil {
		s.defaults = *defaults
	}
	return s
}

// GetSettings retrieves the venue settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.VenueSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.VenueSettings{}
		*settings = s.defaults
		settings.ID = uuid.Nil
		if settings.Name == "" {
			settings.Name = "Cue Club"
		}
		policy := settings.RoundingPolicy()
		settings.RoundingStep, settings.RoundingMode, settings.GraceMinutes = policy.Step, policy.Mode, policy.GraceMinutes
		if settings.PrintCopies < 1 {
			settings.PrintCopies = 1
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating venue settings
type UpdateSettingsInput struct {
	Name          string
	Address       string
	Phone         string
	Currency      string
	Timezone      string
	ReceiptHeader string
	ReceiptFooter string
	RoundingStep  int
	RoundingMode  enum.RoundingMode
	GraceMinutes  int
	PaperSize     string
	PrintCopies   int
}

// UpdateSettings validates and stores the venue settings. The rounding step
// is snapped to the nearest supported step.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.VenueSettings, error) {
	var fieldErrors []apperror.FieldError

	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	policy := billing.RoundingPolicy{Step: input.RoundingStep, Mode: input.RoundingMode, GraceMinutes: input.GraceMinutes}
	if policy.Mode == "" {
		policy.Mode = enum.RoundingModeCeil
	}
	if err := policy.Validate(); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "rounding", Message: err.Error()})
	}
	if input.Timezone != "" {
		if _, err := time.LoadLocation(input.Timezone); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "timezone", Message: "unknown time zone"})
		}
	}
	if input.PaperSize != "" && input.PaperSize != entity.Paper58mm && input.PaperSize != entity.Paper80mm {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "paper_size", Message: "must be 58mm or 80mm"})
	}
	if input.PrintCopies < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "print_copies", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	policy = policy.Normalize()
	settings.Name = strings.TrimSpace(input.Name)
	settings.Address = input.Address
	settings.Phone = input.Phone
	if input.Currency != "" {
		settings.Currency = strings.ToUpper(input.Currency)
	}
	if input.Timezone != "" {
		settings.Timezone = input.Timezone
	}
	settings.ReceiptHeader = input.ReceiptHeader
	settings.ReceiptFooter = input.ReceiptFooter
	settings.RoundingStep = policy.Step
	settings.RoundingMode = policy.Mode
	settings.GraceMinutes = policy.GraceMinutes
	if input.PaperSize != "" {
		settings.PaperSize = input.PaperSize
	}
	if input.PrintCopies > 0 {
		settings.PrintCopies = input.PrintCopies
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
