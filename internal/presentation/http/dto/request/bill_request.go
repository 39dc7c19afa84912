package request

import "time"

// BillFilterRequest represents bill filter parameters
type BillFilterRequest struct {
	Paid      *bool  `form:"paid"`
	TableID   string `form:"table_id"`
	StartDate string `form:"start_date"` // YYYY-MM-DD, venue local
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// PayBillRequest records the payment state of a bill
type PayBillRequest struct {
	Paid          *bool      `json:"paid" binding:"required"`
	PaymentMethod string     `json:"payment_method"`
	PaidAt        *time.Time `json:"paid_at"`
}

// BillNoteRequest replaces a bill note
type BillNoteRequest struct {
	Note string `json:"note" binding:"max=1000"`
}
