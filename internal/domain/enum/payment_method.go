package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a sale was paid for
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = iota
	PaymentMethodCard
	PaymentMethodUPI
	PaymentMethodMultiple
)

func (m PaymentMethod) String() string {
	return [...]string{"Cash", "Card", "UPI", "Multiple"}[m]
}

// ParsePaymentMethod converts a wire string into a PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "Cash":
		return PaymentMethodCash, nil
	case "Card":
		return PaymentMethodCard, nil
	case "UPI":
		return PaymentMethodUPI, nil
	case "Multiple":
		return PaymentMethodMultiple, nil
	}
	return PaymentMethodCash, fmt.Errorf("invalid payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
