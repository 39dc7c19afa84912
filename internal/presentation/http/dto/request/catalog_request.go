package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
)

// TableTypeRequest represents a table type create or update request
type TableTypeRequest struct {
	Name         string               `json:"name" binding:"required,max=100"`
	Description  *string              `json:"description"`
	BaseRate     int64                `json:"base_rate" binding:"min=0"`
	RateSchedule []billing.RateWindow `json:"rate_schedule"`
	Active       *bool                `json:"active"`
}

// TableRequest represents a table create or update request
type TableRequest struct {
	TableTypeID  uuid.UUID `json:"table_type_id" binding:"required"`
	Name         string    `json:"name" binding:"required,max=100"`
	RateOverride *int64    `json:"rate_override" binding:"omitempty,min=0"`
	OrderIndex   int       `json:"order_index"`
	Active       *bool     `json:"active"`
}

// TableFilterRequest represents table filter parameters
type TableFilterRequest struct {
	TableTypeID string `form:"table_type_id"`
	Status      string `form:"status"`
	ActiveOnly  bool   `form:"active_only"`
}

// CategoryRequest represents a category create request
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// ProductRequest represents a product create or update request
type ProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       string     `json:"name" binding:"required,max=255"`
	SKU        *string    `json:"sku" binding:"omitempty,max=100"`
	Price      int64      `json:"price" binding:"min=0"`
	Unit       string     `json:"unit" binding:"omitempty,max=20"`
	Active     *bool      `json:"active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
