package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("-25.88", "EUR")
	assert.NoError(t, err)
	assert.Equal(t, "EUR", m.Currency)
	assert.True(t, m.IsNegative())
	assert.Equal(t, "-25.88 EUR", m.String())

	_, err = NewMoneyFromString("not-a-number", "EUR")
	assert.Error(t, err)
}

func TestMoneyEqual(t *testing.T) {
	a := NewMoney(decimal.RequireFromString("40.00"), "EUR")
	b := NewMoney(decimal.RequireFromString("40"), "EUR")
	c := NewMoney(decimal.RequireFromString("40.00"), "CHF")

	assert.True(t, a.Equal(b), "trailing zeros must not affect equality")
	assert.False(t, a.Equal(c), "currency is part of equality")
	assert.True(t, a.Neg().IsNegative())
	assert.True(t, ZeroMoney("EUR").IsZero())
}

func TestMoneyTagValidation(t *testing.T) {
	r := Record{Tags: []string{"tag1", "tag2"}}
	_, ok := r.ValidateTags()
	assert.True(t, ok)

	r = Record{Tags: []string{"tag1", "bad tag"}}
	tag, ok := r.ValidateTags()
	assert.False(t, ok)
	assert.Equal(t, "bad tag", tag)
}
