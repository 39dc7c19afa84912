package request

import (
	"encoding/json"
	"time"

	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// PromotionRequest represents a promotion create or update request. Rule is
// decoded according to Scope.
type PromotionRequest struct {
	Name           string           `json:"name" binding:"required,max=255"`
	Code           string           `json:"code" binding:"max=50"`
	Description    *string          `json:"description"`
	Scope          string           `json:"scope" binding:"required"`
	Rule           json.RawMessage  `json:"rule"`
	Active         *bool            `json:"active"`
	ApplyOrder     int              `json:"apply_order"`
	Stackable      bool             `json:"stackable"`
	ValidFrom      *time.Time       `json:"valid_from"`
	ValidTo        *time.Time       `json:"valid_to"`
	DaysOfWeek     billing.Weekdays `json:"days_of_week"`
	TimeWindows    []billing.Window `json:"time_windows"`
	DiscountType   string           `json:"discount_type" binding:"required"`
	DiscountValue  decimal.Decimal  `json:"discount_value"`
	DiscountTarget string           `json:"discount_target" binding:"required"`
	MaxDiscount    *int64           `json:"max_discount"`
}

// PromotionFilterRequest represents promotion filter parameters
type PromotionFilterRequest struct {
	Scope   string `form:"scope"`
	Active  *bool  `form:"active"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// SetActiveRequest toggles a promotion
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
