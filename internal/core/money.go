// Package core provides the expense model, amount parsing, the draft
// validation gate and the pure aggregation functions.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and decimal representations.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to cents with half-up rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and ignores
// surrounding whitespace. The value is rounded to two decimals before the
// positivity check, so "0.004" is rejected. Amounts above MaxAmountCents are
// rejected as well.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234, nil
//	ParseAmount("12,34")  -> 1234, nil
//	ParseAmount("12.345") -> 1235, nil
//	ParseAmount("-5")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	m, ok := MoneyFromDecimal(d)
	if !ok {
		return Money{}, ErrInvalidAmount
	}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MaxAmountCents is the largest accepted amount, 100 billion in major units.
// Sums of any realistic number of expenses stay far from int64 overflow.
const MaxAmountCents = 1e13

// MoneyFromDecimal rounds d to cents. ok is false when the result is above
// MaxAmountCents in absolute value.
func MoneyFromDecimal(d decimal.Decimal) (Money, bool) {
	cents := d.Round(2).Shift(2)
	if !cents.IsInteger() || cents.Abs().GreaterThan(decimal.NewFromInt(MaxAmountCents)) {
		return Money{}, false
	}
	return Money{Cents: cents.IntPart()}, true
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add returns the sum of both amounts.
func (m Money) Add(n Money) Money {
	return Money{Cents: m.Cents + n.Cents}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}
