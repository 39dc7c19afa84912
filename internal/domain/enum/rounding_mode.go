package enum

import (
	"database/sql/driver"
	"fmt"
)

// RoundingMode decides how elapsed minutes snap to the rounding step
type RoundingMode string

const (
	RoundingModeCeil  RoundingMode = "ceil"
	RoundingModeRound RoundingMode = "round"
	RoundingModeFloor RoundingMode = "floor"
)

func (v RoundingMode) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v RoundingMode) IsValid() bool {
	switch v {
	case RoundingModeCeil, RoundingModeRound, RoundingModeFloor:
		return true
	}
	return false
}

func (v RoundingMode) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *RoundingMode) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = RoundingMode(s)
	case []byte:
		*v = RoundingMode(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into RoundingMode", value)
	}
	return nil
}
