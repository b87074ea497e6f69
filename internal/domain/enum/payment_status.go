package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentStatus represents how much of a sale has been settled
type PaymentStatus int

const (
	PaymentStatusPaid PaymentStatus = iota
	PaymentStatusPartial
	PaymentStatusUnpaid
)

func (s PaymentStatus) String() string {
	return [...]string{"Paid", "Partial", "Unpaid"}[s]
}

// ParsePaymentStatus converts a wire string into a PaymentStatus
func ParsePaymentStatus(str string) (PaymentStatus, error) {
	switch str {
	case "Paid":
		return PaymentStatusPaid, nil
	case "Partial":
		return PaymentStatusPartial, nil
	case "Unpaid":
		return PaymentStatusUnpaid, nil
	}
	return PaymentStatusPaid, fmt.Errorf("invalid payment status %q", str)
}

// DerivePaymentStatus computes the status from the outstanding balance.
// due and total are in cents.
func DerivePaymentStatus(total, due int64) PaymentStatus {
	switch {
	case due <= 0:
		return PaymentStatusPaid
	case due >= total:
		return PaymentStatusUnpaid
	default:
		return PaymentStatusPartial
	}
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
