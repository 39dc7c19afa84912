package enum

import (
	"database/sql/driver"
	"fmt"
)

// StaffRole is the access level of a staff account
type StaffRole string

const (
	StaffRoleAdmin StaffRole = "admin"
	StaffRoleStaff StaffRole = "staff"
)

func (v StaffRole) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v StaffRole) IsValid() bool {
	switch v {
	case StaffRoleAdmin, StaffRoleStaff:
		return true
	}
	return false
}

func (v StaffRole) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *StaffRole) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = StaffRole(s)
	case []byte:
		*v = StaffRole(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into StaffRole", value)
	}
	return nil
}
