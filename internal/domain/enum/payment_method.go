package enum

import (
	"database/sql/driver"
	"fmt"
)

// PaymentMethod is how a bill was settled
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

func (v PaymentMethod) String() string {
	return string(v)
}

// IsValid reports whether v is one of the declared values.
func (v PaymentMethod) IsValid() bool {
	switch v {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

func (v PaymentMethod) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *PaymentMethod) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = ""
	case string:
		*v = PaymentMethod(s)
	case []byte:
		*v = PaymentMethod(string(s))
	default:
		return fmt.Errorf("enum: cannot scan %T into PaymentMethod", value)
	}
	return nil
}
