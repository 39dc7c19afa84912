package enum

import (
	"database/sql/driver"
	"fmt"
)

// RateSource records which pricing tier produced a session rate
type RateSource string

const (
	RateSourceOverride RateSource = "override"
	RateSourceSchedule RateSource = "schedule"
	RateSourceBase     RateSource = "base"
)

func (v RateSource) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v RateSource) IsValid() bool {
	switch v {
	case RateSourceOverride, RateSourceSchedule, RateSourceBase:
		return true
	}
	return false
}

func (v RateSource) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *RateSource) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = RateSource(s)
	case []byte:
		*v = RateSource(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into RateSource", value)
	}
	return nil
}
