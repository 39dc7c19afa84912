package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest represents a check-in request
type OpenSessionRequest struct {
	TableID uuid.UUID  `json:"table_id" binding:"required"`
	StartAt *time.Time `json:"start_at"`
	Note    string     `json:"note" binding:"max=1000"`
}

// SessionFilterRequest represents session filter parameters
type SessionFilterRequest struct {
	Status  string `form:"status"`
	TableID string `form:"table_id"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// AddItemRequest represents a product added to a session
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Qty       int       `json:"qty"`
	Note      string    `json:"note" binding:"max=500"`
}

// UpdateItemRequest sets the quantity of a session item
type UpdateItemRequest struct {
	Qty *int `json:"qty" binding:"required"`
}

// ManualDiscountRequest is a discount entered at checkout
type ManualDiscountRequest struct {
	Name      string          `json:"name" binding:"max=255"`
	Type      string          `json:"type" binding:"required"`
	Value     decimal.Decimal `json:"value"`
	Target    string          `json:"target"`
	MaxAmount *int64          `json:"max_amount"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	EndAt         *time.Time              `json:"end_at"`
	Discounts     []ManualDiscountRequest `json:"discounts" binding:"dive"`
	Surcharge     int64                   `json:"surcharge"`
	PaymentMethod string                  `json:"payment_method"`
	Paid          *bool                   `json:"paid"`
	Code          string                  `json:"code" binding:"max=32"`
	Note          string                  `json:"note" binding:"max=1000"`
}

// VoidSessionRequest represents a void request
type VoidSessionRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// TransferSessionRequest represents a table change
type TransferSessionRequest struct {
	ToTableID uuid.UUID `json:"to_table_id" binding:"required"`
	Note      string    `json:"note" binding:"max=1000"`
}
