package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// TableSnapshot is the pricing captured when a session opens. It is written
// once and never updated, transfers included.
type TableSnapshot struct {
	TableTypeID uuid.UUID       `gorm:"type:uuid" json:"table_type_id"`
	TableName   string          `gorm:"size:100" json:"table_name"`
	RatePerHour int64           `gorm:"not null;default:0" json:"rate_per_hour"`
	RateSource  enum.RateSource `gorm:"size:20" json:"rate_source"`
}

// PolicySnapshot is the venue rounding policy captured when a session opens.
type PolicySnapshot struct {
	Step         int               `gorm:"not null;default:1" json:"rounding_step"`
	Mode         enum.RoundingMode `gorm:"size:10" json:"rounding_mode"`
	GraceMinutes int               `gorm:"not null;default:0" json:"grace_minutes"`
}

// NewPolicySnapshot freezes a rounding policy.
func NewPolicySnapshot(p billing.RoundingPolicy) PolicySnapshot {
	p = p.Normalize()
	return PolicySnapshot{Step: p.Step, Mode: p.Mode, GraceMinutes: p.GraceMinutes}
}

// Policy returns the snapshot as a billing rounding policy.
func (p PolicySnapshot) Policy() billing.RoundingPolicy {
	return billing.RoundingPolicy{Step: p.Step, Mode: p.Mode, GraceMinutes: p.GraceMinutes}
}

// Session is one continuous occupancy of a table
type Session struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TableID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"table_id"`
	Status          enum.SessionStatus `gorm:"size:10;not null;index" json:"status"`
	Snapshot        TableSnapshot      `gorm:"embedded;embeddedPrefix:snap_" json:"table_snapshot"`
	Rounding        PolicySnapshot     `gorm:"embedded;embeddedPrefix:rounding_" json:"rounding_policy"`
	StartAt         time.Time          `gorm:"not null" json:"start_at"`
	EndAt           *time.Time         `json:"end_at,omitempty"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	StaffStartID    *uuid.UUID         `gorm:"type:uuid" json:"staff_start_id,omitempty"`
	StaffEndID      *uuid.UUID         `gorm:"type:uuid" json:"staff_end_id,omitempty"`
	Note            string             `gorm:"type:text" json:"note,omitempty"`
	VoidReason      string             `gorm:"type:text" json:"void_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relationships
	Items []SessionItem `gorm:"foreignKey:SessionID" json:"items"`
	Table *Table        `gorm:"foreignKey:TableID" json:"table,omitempty"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// IsOpen reports whether the session still accepts changes.
func (s *Session) IsOpen() bool {
	return s.Status == enum.SessionStatusOpen
}

// ItemSnapshots converts the session items for the billing core.
func (s *Session) ItemSnapshots() []billing.ItemSnapshot {
	out := make([]billing.ItemSnapshot, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.Snapshot())
	}
	return out
}

// FindItem returns the item with the given id, or nil.
func (s *Session) FindItem(id uuid.UUID) *SessionItem {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// FindProductItem returns the item for the given product, or nil.
func (s *Session) FindProductItem(productID uuid.UUID) *SessionItem {
	for i := range s.Items {
		if p := s.Items[i].ProductID; p != nil && *p == productID {
			return &s.Items[i]
		}
	}
	return nil
}

// SessionItem is a product added to a session, priced when it was added
type SessionItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SessionID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"session_id"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id,omitempty"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Price      int64      `gorm:"not null;default:0" json:"price"`
	Qty        int        `gorm:"not null" json:"qty"`
	Note       string     `gorm:"type:text" json:"note,omitempty"`
	Position   int        `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new session item
func (i *SessionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SessionItem model
func (SessionItem) TableName() string {
	return "session_items"
}

// Amount is the line amount at the snapshot price.
func (i SessionItem) Amount() int64 {
	return i.Snapshot().Amount()
}

// Snapshot returns the item as seen by the billing core.
func (i SessionItem) Snapshot() billing.ItemSnapshot {
	s := billing.ItemSnapshot{
		ProductID: i.ProductID,
		Name:      i.Name,
		Price:     i.Price,
		Qty:       i.Qty,
		Note:      i.Note,
	}
	if i.CategoryID != nil {
		s.CategoryID = *i.CategoryID
	}
	return s
}
