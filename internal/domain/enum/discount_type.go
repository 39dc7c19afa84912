package enum

import (
	"database/sql/driver"
	"fmt"
)

// DiscountType is how a discount value is interpreted
type DiscountType string

const (
	DiscountTypePercent     DiscountType = "percent"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

func (v DiscountType) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v DiscountType) IsValid() bool {
	switch v {
	case DiscountTypePercent, DiscountTypeFixedAmount:
		return true
	}
	return false
}

func (v DiscountType) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *DiscountType) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = DiscountType(s)
	case []byte:
		*v = DiscountType(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into DiscountType", value)
	}
	return nil
}
