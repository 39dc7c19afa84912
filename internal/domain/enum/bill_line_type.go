package enum

import (
	"database/sql/driver"
	"fmt"
)

// BillLineType discriminates bill charge lines
type BillLineType string

const (
	BillLineTypePlay    BillLineType = "play"
	BillLineTypeProduct BillLineType = "product"
)

func (v BillLineType) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v BillLineType) IsValid() bool {
	switch v {
	case BillLineTypePlay, BillLineTypeProduct:
		return true
	}
	return false
}

func (v BillLineType) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *BillLineType) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = BillLineType(s)
	case []byte:
		*v = BillLineType(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into BillLineType", value)
	}
	return nil
}
