package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Promotion is a catalog discount rule. The rule payload is stored as JSON
// and its shape depends on Scope.
type Promotion struct {
	ID             uuid.UUID                            `gorm:"type:uuid;primary_key" json:"id"`
	Name           string                               `gorm:"size:255;not null" json:"name"`
	Code           *string                              `gorm:"size:50;uniqueIndex" json:"code,omitempty"`
	Description    *string                              `gorm:"type:text" json:"description,omitempty"`
	Scope          enum.PromotionScope                  `gorm:"size:10;not null;index" json:"scope"`
	Active         bool                                 `gorm:"not null;index" json:"active"`
	ApplyOrder     int                                  `gorm:"not null;default:0" json:"apply_order"`
	Stackable      bool                                 `gorm:"not null" json:"stackable"`
	RuleData       datatypes.JSON                       `gorm:"column:rule" json:"rule"`
	ValidFrom      *time.Time                           `json:"valid_from,omitempty"`
	ValidTo        *time.Time                           `json:"valid_to,omitempty"`
	DaysOfWeek     datatypes.JSONType[billing.Weekdays] `json:"days_of_week"`
	TimeWindows    datatypes.JSONType[[]billing.Window] `json:"time_windows"`
	DiscountType   enum.DiscountType                    `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue  decimal.Decimal                      `gorm:"type:numeric(14,2);not null" json:"discount_value"`
	DiscountTarget enum.DiscountTarget                  `gorm:"size:10;not null" json:"discount_target"`
	MaxDiscount    *int64                               `json:"max_discount,omitempty"`
	CreatedAt      time.Time                            `json:"created_at"`
	UpdatedAt      time.Time                            `json:"updated_at"`
	DeletedAt      gorm.DeletedAt                       `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new promotion
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Promotion model
func (Promotion) TableName() string {
	return "promotions"
}

// Rule decodes the stored rule payload according to the scope.
func (p *Promotion) Rule() (billing.Rule, error) {
	return DecodeRule(p.Scope, p.RuleData)
}

// SetRule encodes rule into the payload column and sets the matching scope.
func (p *Promotion) SetRule(rule billing.Rule) error {
	data, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("encode promotion rule: %w", err)
	}
	p.Scope = rule.Scope()
	p.RuleData = datatypes.JSON(data)
	return nil
}

// DecodeRule parses a rule payload for the given scope. An empty payload
// decodes to the zero rule of that scope.
func DecodeRule(scope enum.PromotionScope, data []byte) (billing.Rule, error) {
	if len(data) == 0 || string(data) == "null" {
		data = []byte("{}")
	}
	switch scope {
	case enum.PromotionScopeTime:
		var r billing.TimeRule
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode time rule: %w", err)
		}
		return r, nil
	case enum.PromotionScopeProduct:
		var r billing.ProductRule
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode product rule: %w", err)
		}
		return r, nil
	case enum.PromotionScopeBill:
		var r billing.BillRule
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode bill rule: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown promotion scope %q", scope)
	}
}

// Discount returns the discount definition.
func (p *Promotion) Discount() billing.Discount {
	return billing.Discount{
		Type:      p.DiscountType,
		Value:     p.DiscountValue,
		Target:    p.DiscountTarget,
		MaxAmount: p.MaxDiscount,
	}
}

// Validity returns the time gate of the promotion.
func (p *Promotion) Validity() billing.Validity {
	return billing.Validity{
		From:    p.ValidFrom,
		To:      p.ValidTo,
		Days:    p.DaysOfWeek.Data(),
		Windows: p.TimeWindows.Data(),
	}
}

// ToBilling converts the promotion for the promotion engine.
func (p *Promotion) ToBilling() (billing.Promotion, error) {
	rule, err := p.Rule()
	if err != nil {
		return billing.Promotion{}, err
	}
	code := ""
	if p.Code != nil {
		code = *p.Code
	}
	return billing.Promotion{
		ID:         p.ID,
		Name:       p.Name,
		Code:       code,
		Active:     p.Active,
		ApplyOrder: p.ApplyOrder,
		Stackable:  p.Stackable,
		CreatedAt:  p.CreatedAt,
		Validity:   p.Validity(),
		Rule:       rule,
		Discount:   p.Discount(),
	}, nil
}
