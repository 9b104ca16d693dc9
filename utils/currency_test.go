package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.99", "$12.99"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"-31.19", "-$31.19"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}
