package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Receipt paper sizes
const (
	Paper58mm = "58mm"
	Paper80mm = "80mm"
)

// VenueSettings is the single row of venue-wide configuration
type VenueSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Shop
	Name          string `gorm:"size:255;not null" json:"name"`
	Address       string `gorm:"type:text" json:"address"`
	Phone         string `gorm:"size:50" json:"phone"`
	Currency      string `gorm:"size:10;default:'VND'" json:"currency"`
	Timezone      string `gorm:"size:50;default:'Asia/Ho_Chi_Minh'" json:"timezone"`
	ReceiptHeader string `gorm:"type:text" json:"receipt_header"`
	ReceiptFooter string `gorm:"type:text" json:"receipt_footer"`

	// Billing
	RoundingStep int               `gorm:"not null;default:5" json:"rounding_step"`
	RoundingMode enum.RoundingMode `gorm:"size:10;default:'ceil'" json:"rounding_mode"`
	GraceMinutes int               `gorm:"not null;default:0" json:"grace_minutes"`

	// Printing
	PaperSize   string `gorm:"size:10;default:'80mm'" json:"paper_size"`
	PrintCopies int    `gorm:"not null;default:1" json:"print_copies"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *VenueSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VenueSettings model
func (VenueSettings) TableName() string {
	return "venue_settings"
}

// RoundingPolicy returns the current billing policy, normalized.
func (s *VenueSettings) RoundingPolicy() billing.RoundingPolicy {
	return billing.RoundingPolicy{
		Step:         s.RoundingStep,
		Mode:         s.RoundingMode,
		GraceMinutes: s.GraceMinutes,
	}.Normalize()
}

// Location returns the venue time zone, UTC when unknown.
func (s *VenueSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
