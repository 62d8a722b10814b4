package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount rendered with two decimal places.
// Amounts are persisted as integer cents; Money is the API-facing view.
type Money struct {
	dec decimal.Decimal
}

var centsFactor = decimal.NewFromInt(100)

// MoneyFromCents converts an integer cent amount into Money.
func MoneyFromCents(cents int64) Money {
	return Money{dec: decimal.NewFromInt(cents).Div(centsFactor)}
}

// MoneyZero returns the zero amount.
func MoneyZero() Money {
	return Money{}
}

// Cents converts the amount back to integer cents. Amounts with more than
// two decimal places are rejected so nothing is silently truncated.
func (m Money) Cents() (int64, error) {
	if !m.dec.Equal(m.dec.Round(2)) {
		return 0, fmt.Errorf("amount %s has more than two decimal places", m.dec)
	}
	return m.dec.Mul(centsFactor).IntPart(), nil
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// MulInt multiplies by a quantity and rounds half-up to two places.
func (m Money) MulInt(qty int64) Money {
	return Money{dec: m.dec.Mul(decimal.NewFromInt(qty)).Round(2)}
}

// Add sums two amounts without rounding.
func (m Money) Add(other Money) Money {
	return Money{dec: m.dec.Add(other.dec)}
}

// Round2 rounds half-up to two decimal places.
func (m Money) Round2() Money {
	return Money{dec: m.dec.Round(2)}
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.dec.Equal(other.dec)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.dec.StringFixed(2)
}

// MarshalJSON renders the amount as a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.dec.StringFixed(2)), nil
}

// UnmarshalJSON accepts JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.dec = d
	return nil
}
