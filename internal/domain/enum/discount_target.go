package enum

import (
	"database/sql/driver"
	"fmt"
)

// DiscountTarget is the charge category a discount draws from
type DiscountTarget string

const (
	DiscountTargetPlay    DiscountTarget = "play"
	DiscountTargetService DiscountTarget = "service"
	DiscountTargetBill    DiscountTarget = "bill"
)

func (v DiscountTarget) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v DiscountTarget) IsValid() bool {
	switch v {
	case DiscountTargetPlay, DiscountTargetService, DiscountTargetBill:
		return true
	}
	return false
}

func (v DiscountTarget) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *DiscountTarget) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = DiscountTarget(s)
	case []byte:
		*v = DiscountTarget(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into DiscountTarget", value)
	}
	return nil
}
