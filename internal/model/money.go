package model

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in major currency units as reported by Magento.
// Nullable money fields are represented as *Money; nil means the backend
// omitted the amount.
type Money struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency,omitempty"`
}

// NewMoney builds Money from Magento's Money{value, currency} pair.
// Returns nil when value is absent.
func NewMoney(value *float64, currency *string) *Money {
	if value == nil {
		return nil
	}
	m := &Money{Value: decimal.NewFromFloat(*value)}
	if currency != nil {
		m.Currency = *currency
	}
	return m
}

// Cents returns the amount in minor units, rounded half away from zero.
// Examples: 99.00 → 9900, 0.005 → 1
func (m *Money) Cents() int64 {
	if m == nil {
		return 0
	}
	return m.Value.Shift(2).Round(0).IntPart()
}

// String formats the amount with two decimals followed by the currency code.
func (m *Money) String() string {
	if m == nil {
		return ""
	}
	if m.Currency == "" {
		return m.Value.StringFixed(2)
	}
	return m.Value.StringFixed(2) + " " + m.Currency
}
