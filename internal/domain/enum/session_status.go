package enum

import (
	"database/sql/driver"
	"fmt"
)

// SessionStatus is the lifecycle state of a table session
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "open"
	SessionStatusClosed SessionStatus = "closed"
	SessionStatusVoid   SessionStatus = "void"
)

func (v SessionStatus) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v SessionStatus) IsValid() bool {
	switch v {
	case SessionStatusOpen, SessionStatusClosed, SessionStatusVoid:
		return true
	}
	return false
}

func (v SessionStatus) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *SessionStatus) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = SessionStatus(s)
	case []byte:
		*v = SessionStatus(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into SessionStatus", value)
	}
	return nil
}
