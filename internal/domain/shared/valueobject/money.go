package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a value object for INR amounts held in paise (minor units).
// All book-keeping arithmetic stays in integers; decimal conversion only
// happens at the display/input boundary. Immutable - operations return
// new Money instances.
type Money struct {
	paise int64
}

var hundred = decimal.NewFromInt(100)

// NewMoney creates Money from a paise amount
func NewMoney(paise int64) Money {
	return Money{paise: paise}
}

// NewMoneyFromRupees creates Money from a rupee decimal, rounding half-up
// to the paise
func NewMoneyFromRupees(rupees decimal.Decimal) Money {
	return Money{paise: rupees.Mul(hundred).Round(0).IntPart()}
}

// NewMoneyFromRupeeString creates Money from a rupee string such as "1250.50"
func NewMoneyFromRupeeString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoneyFromRupees(d), nil
}

// Zero returns a zero-value Money
func Zero() Money {
	return Money{}
}

// Paise returns the amount in minor units
func (m Money) Paise() int64 {
	return m.paise
}

// Rupees returns the amount as a rupee decimal
func (m Money) Rupees() decimal.Decimal {
	return decimal.NewFromInt(m.paise).Div(hundred)
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.paise == 0
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.paise > 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.paise < 0
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{paise: m.paise + other.paise}
}

// Subtract returns the difference of both amounts
func (m Money) Subtract(other Money) Money {
	return Money{paise: m.paise - other.paise}
}

// Neg returns the amount with its sign flipped
func (m Money) Neg() Money {
	return Money{paise: -m.paise}
}

// Abs returns the absolute amount
func (m Money) Abs() Money {
	if m.paise < 0 {
		return Money{paise: -m.paise}
	}
	return m
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other
func (m Money) Cmp(other Money) int {
	switch {
	case m.paise < other.paise:
		return -1
	case m.paise > other.paise:
		return 1
	}
	return 0
}

// LessThan returns true if m < other
func (m Money) LessThan(other Money) bool {
	return m.paise < other.paise
}

// GreaterThan returns true if m > other
func (m Money) GreaterThan(other Money) bool {
	return m.paise > other.paise
}

// String formats the amount as rupees, e.g. "1250.50"
func (m Money) String() string {
	return m.Rupees().StringFixed(2)
}

// MarshalJSON serializes as raw paise so clients never see float rupees
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.paise)
}

// UnmarshalJSON reads a paise integer
func (m *Money) UnmarshalJSON(data []byte) error {
	var paise int64
	if err := json.Unmarshal(data, &paise); err != nil {
		return fmt.Errorf("invalid money value: %w", err)
	}
	m.paise = paise
	return nil
}

// Value implements driver.Valuer so Money maps to a BIGINT column
func (m Money) Value() (driver.Value, error) {
	return m.paise, nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.paise = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		m.paise = v
	case int:
		m.paise = int64(v)
	default:
		return fmt.Errorf("failed to scan Money: unsupported type %T", value)
	}
	return nil
}
