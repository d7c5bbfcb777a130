package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m := NewMoney(50000, "TRY")
	assert.Equal(t, int64(50000), m.Amount())
	assert.Equal(t, "TRY", m.Currency())

	defaulted := NewMoney(100, "")
	assert.Equal(t, DefaultCurrency, defaulted.Currency())
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, NewMoney(1, "TRY").IsPositive())
	assert.False(t, NewMoney(0, "TRY").IsPositive())
	assert.False(t, NewMoney(-1, "TRY").IsPositive())

	assert.True(t, NewMoney(0, "TRY").IsZero())
	assert.False(t, NewMoney(1, "TRY").IsZero())
}

func TestMoney_Add(t *testing.T) {
	sum, err := NewMoney(100, "TRY").Add(NewMoney(250, "TRY"))
	require.NoError(t, err)
	assert.Equal(t, int64(350), sum.Amount())

	_, err = NewMoney(100, "TRY").Add(NewMoney(100, "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_Equals(t *testing.T) {
	assert.True(t, NewMoney(100, "TRY").Equals(NewMoney(100, "TRY")))
	assert.False(t, NewMoney(100, "TRY").Equals(NewMoney(200, "TRY")))
	assert.False(t, NewMoney(100, "TRY").Equals(NewMoney(100, "EUR")))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "500.00 TRY", NewMoney(50000, "TRY").String())
	assert.Equal(t, "0.05 TRY", NewMoney(5, "TRY").String())
}
