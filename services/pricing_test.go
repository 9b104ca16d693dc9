package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	// 2 x 12.99 with a 3.00 tip at 8.5%
	got := ComputeTotals(d("25.98"), d("8.5"), d("3"))

	assert.True(t, d("25.98").Equal(got.Subtotal), got.Subtotal.String())
	assert.True(t, d("2.21").Equal(got.TaxAmount), got.TaxAmount.String())
	assert.True(t, d("31.19").Equal(got.Total), got.Total.String())
}

func TestComputeTotalsZeroRate(t *testing.T) {
	got := ComputeTotals(d("9.99"), decimal.Zero, decimal.Zero)

	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, d("9.99").Equal(got.Total))
}

func TestLoyaltyPoints(t *testing.T) {
	tests := []struct {
		total string
		want  int
	}{
		{"0", 0},
		{"9.99", 0},
		{"10.00", 1},
		{"25.50", 2},
		{"31.19", 3},
		{"100", 10},
		{"-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			assert.Equal(t, tt.want, LoyaltyPoints(d(tt.total)))
		})
	}
}
