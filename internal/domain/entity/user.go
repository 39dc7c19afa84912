package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a staff member who can sign in
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"size:255" json:"-"`
	Role        enum.StaffRole `gorm:"size:20;not null;default:'staff'" json:"role"`
	Active      bool           `gorm:"not null" json:"active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user manages the catalog and settings
func (u *User) IsAdmin() bool {
	return u.Role == enum.StaffRoleAdmin
}
