package enum

import (
	"database/sql/driver"
	"fmt"
)

// TableStatus is the display status of a table
type TableStatus string

const (
	TableStatusAvailable   TableStatus = "available"
	TableStatusOccupied    TableStatus = "occupied"
	TableStatusReserved    TableStatus = "reserved"
	TableStatusMaintenance TableStatus = "maintenance"
)

func (v TableStatus) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v TableStatus) IsValid() bool {
	switch v {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusMaintenance:
		return true
	}
	return false
}

func (v TableStatus) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *TableStatus) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = TableStatus(s)
	case []byte:
		*v = TableStatus(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into TableStatus", value)
	}
	return nil
}
