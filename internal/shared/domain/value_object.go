package domain

import (
	"errors"
	"fmt"
)

// ValueObject represents an immutable domain concept defined by its attributes.
type ValueObject interface {
	Equals(other ValueObject) bool
}

// ErrCurrencyMismatch is returned when combining money of different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// DefaultCurrency is the currency assumed when none is given.
const DefaultCurrency = "TRY"

// Money represents a monetary amount in the smallest currency unit (kuruş).
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value in the smallest currency unit.
func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

func (m Money) Amount() int64    { return m.amount }
func (m Money) Currency() string { return m.currency }

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Equals checks if two Money values are equal.
func (m Money) Equals(other ValueObject) bool {
	if otherMoney, ok := other.(Money); ok {
		return m.amount == otherMoney.amount && m.currency == otherMoney.currency
	}
	return false
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amount/100, m.amount%100, m.currency)
}
