package enum

import (
	"database/sql/driver"
	"fmt"
)

// PromotionScope selects the condition family a promotion is evaluated with
type PromotionScope string

const (
	PromotionScopeTime    PromotionScope = "time"
	PromotionScopeProduct PromotionScope = "product"
	PromotionScopeBill    PromotionScope = "bill"
)

func (v PromotionScope) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v PromotionScope) IsValid() bool {
	switch v {
	case PromotionScopeTime, PromotionScopeProduct, PromotionScopeBill:
		return true
	}
	return false
}

func (v PromotionScope) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *PromotionScope) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = PromotionScope(s)
	case []byte:
		*v = PromotionScope(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into PromotionScope", value)
	}
	return nil
}
