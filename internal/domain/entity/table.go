package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TableType groups tables sharing one price list (pool, carom, snooker...)
type TableType struct {
	ID          uuid.UUID                                `gorm:"type:uuid;primary_key" json:"id"`
	Name        string                                   `gorm:"size:100;not null" json:"name"`
	Description *string                                  `gorm:"type:text" json:"description,omitempty"`
	BaseRate    int64                                    `gorm:"not null;default:0" json:"base_rate"` // per hour
	Schedule    datatypes.JSONType[[]billing.RateWindow] `json:"rate_schedule"`
	Active      bool                                     `gorm:"not null" json:"active"`
	CreatedAt   time.Time                                `json:"created_at"`
	UpdatedAt   time.Time                                `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                           `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new table type
func (t *TableType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TableType model
func (TableType) TableName() string {
	return "table_types"
}

// Table is one physical billiard table
type Table struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TableTypeID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"table_type_id"`
	Name         string           `gorm:"size:100;not null" json:"name"`
	RateOverride *int64           `json:"rate_override,omitempty"`
	Status       enum.TableStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	OrderIndex   int              `gorm:"not null;default:0" json:"order_index"`
	Active       bool             `gorm:"not null" json:"active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	TableType *TableType `gorm:"foreignKey:TableTypeID" json:"table_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "tables"
}

// Rates collects what the rate resolver needs. TableType must be loaded,
// otherwise only the override is considered.
func (t *Table) Rates() billing.TableRates {
	r := billing.TableRates{Override: t.RateOverride}
	if t.TableType != nil {
		r.BaseRate = t.TableType.BaseRate
		r.Schedule = t.TableType.Schedule.Data()
	}
	return r
}
