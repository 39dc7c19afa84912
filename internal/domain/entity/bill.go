package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bill is the settled invoice of a closed session. Only the payment fields
// and the note change after creation.
type Bill struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Code            string             `gorm:"size:32;not null;uniqueIndex" json:"code"`
	SessionID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	TableID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"table_id"`
	TableName       string             `gorm:"size:100" json:"table_name"`
	StartAt         time.Time          `gorm:"not null" json:"start_at"`
	EndAt           time.Time          `gorm:"not null;index" json:"end_at"`
	RawMinutes      int                `gorm:"not null;default:0" json:"raw_minutes"`
	BillableMinutes int                `gorm:"not null;default:0" json:"billable_minutes"`
	RatePerHour     int64              `gorm:"not null;default:0" json:"rate_per_hour"`
	PlayAmount      int64              `gorm:"not null;default:0" json:"play_amount"`
	ServiceAmount   int64              `gorm:"not null;default:0" json:"service_amount"`
	SubTotal        int64              `gorm:"not null;default:0" json:"sub_total"`
	DiscountTotal   int64              `gorm:"not null;default:0" json:"discount_total"`
	Surcharge       int64              `gorm:"not null;default:0" json:"surcharge"`
	Total           int64              `gorm:"not null;default:0" json:"total"`
	Paid            bool               `gorm:"not null;index" json:"paid"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:20" json:"payment_method"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	Note            string             `gorm:"type:text" json:"note,omitempty"`
	StaffID         *uuid.UUID         `gorm:"type:uuid" json:"staff_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relationships
	Lines     []BillLine     `gorm:"foreignKey:BillID" json:"lines"`
	Discounts []BillDiscount `gorm:"foreignKey:BillID" json:"discounts"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BillLine is a persisted charge line. Minutes and RatePerHour are set on the
// play line, UnitPrice and Qty on product lines.
type BillLine struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BillID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"bill_id"`
	Position    int               `gorm:"not null" json:"position"`
	Type        enum.BillLineType `gorm:"size:10;not null" json:"type"`
	ProductID   *uuid.UUID        `gorm:"type:uuid" json:"product_id,omitempty"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	Minutes     *int              `json:"minutes,omitempty"`
	RatePerHour *int64            `json:"rate_per_hour,omitempty"`
	UnitPrice   *int64            `json:"unit_price,omitempty"`
	Qty         *int              `json:"qty,omitempty"`
	Amount      int64             `gorm:"not null" json:"amount"`
	Note        string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new bill line
func (l *BillLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillLine model
func (BillLine) TableName() string {
	return "bill_lines"
}

// NewBillLine flattens a charge line into a row.
func NewBillLine(position int, c billing.ChargeLine) BillLine {
	line := BillLine{Position: position, Type: c.LineType(), Amount: c.LineAmount()}
	switch v := c.(type) {
	case billing.PlayCharge:
		minutes, rate := v.Minutes, v.RatePerHour
		line.Name = "Play time"
		line.Minutes = &minutes
		line.RatePerHour = &rate
	case billing.ProductCharge:
		price, qty := v.UnitPrice, v.Qty
		line.ProductID = v.ProductID
		line.Name = v.Name
		line.UnitPrice = &price
		line.Qty = &qty
		line.Note = v.Note
	}
	return line
}

// Charge rebuilds the typed charge line.
func (l BillLine) Charge() billing.ChargeLine {
	if l.Type == enum.BillLineTypePlay {
		c := billing.PlayCharge{Amount: l.Amount}
		if l.Minutes != nil {
			c.Minutes = *l.Minutes
		}
		if l.RatePerHour != nil {
			c.RatePerHour = *l.RatePerHour
		}
		return c
	}
	c := billing.ProductCharge{ProductID: l.ProductID, Name: l.Name, Amount: l.Amount, Note: l.Note}
	if l.UnitPrice != nil {
		c.UnitPrice = *l.UnitPrice
	}
	if l.Qty != nil {
		c.Qty = *l.Qty
	}
	return c
}

// DiscountTrace records which base a discount was computed on.
type DiscountTrace struct {
	EligibleBase int64  `json:"eligible_base"`
	MatchedBase  *int64 `json:"matched_base,omitempty"`
	Manual       bool   `json:"manual,omitempty"`
}

// BillDiscount is a persisted discount line
type BillDiscount struct {
	ID          uuid.UUID                         `gorm:"type:uuid;primary_key" json:"id"`
	BillID      uuid.UUID                         `gorm:"type:uuid;not null;index" json:"bill_id"`
	Position    int                               `gorm:"not null" json:"position"`
	PromotionID *uuid.UUID                        `gorm:"type:uuid;index" json:"promotion_id,omitempty"`
	Name        string                            `gorm:"size:255;not null" json:"name"`
	Code        string                            `gorm:"size:50" json:"code,omitempty"`
	Scope       enum.PromotionScope               `gorm:"size:10" json:"scope"`
	Type        enum.DiscountType                 `gorm:"size:20;not null" json:"type"`
	Value       decimal.Decimal                   `gorm:"type:numeric(14,2);not null" json:"value"`
	Target      enum.DiscountTarget               `gorm:"size:10;not null" json:"target"`
	Amount      int64                             `gorm:"not null" json:"amount"`
	Trace       datatypes.JSONType[DiscountTrace] `json:"trace"`
	CreatedAt   time.Time                         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new bill discount
func (d *BillDiscount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillDiscount model
func (BillDiscount) TableName() string {
	return "bill_discounts"
}

// NewBillDiscount converts an engine discount line into a row.
func NewBillDiscount(position int, d billing.DiscountLine) BillDiscount {
	return BillDiscount{
		Position:    position,
		PromotionID: d.PromotionID,
		Name:        d.Name,
		Code:        d.Code,
		Scope:       d.Scope,
		Type:        d.Type,
		Value:       d.Value,
		Target:      d.Target,
		Amount:      d.Amount,
		Trace: datatypes.NewJSONType(DiscountTrace{
			EligibleBase: d.EligibleBase,
			MatchedBase:  d.MatchedBase,
			Manual:       d.Manual,
		}),
	}
}

// NewBill builds the bill rows from an assembled invoice.
func NewBill(session *Session, tableName string, end time.Time, minutes billing.MinuteResult, asm billing.Assembly) *Bill {
	b := &Bill{
		SessionID:       session.ID,
		TableID:         session.TableID,
		TableName:       tableName,
		StartAt:         session.StartAt,
		EndAt:           end,
		RawMinutes:      minutes.RawMinutes,
		BillableMinutes: minutes.BillableMinutes,
		RatePerHour:     asm.Play.RatePerHour,
		PlayAmount:      asm.PlayAmount,
		ServiceAmount:   asm.ServiceAmount,
		SubTotal:        asm.SubTotal,
		DiscountTotal:   asm.DiscountTotal,
		Surcharge:       asm.Surcharge,
		Total:           asm.Total,
		Paid:            asm.Payment.Paid,
		PaymentMethod:   asm.Payment.Method,
		PaidAt:          asm.Payment.PaidAt,
	}
	for i, line := range asm.Lines() {
		b.Lines = append(b.Lines, NewBillLine(i, line))
	}
	for i, d := range asm.Discounts {
		b.Discounts = append(b.Discounts, NewBillDiscount(i, d))
	}
	return b
}
