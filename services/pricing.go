package services

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	ten     = decimal.NewFromInt(10)
)

// Totals is the money breakdown shared by orders and invoices.
// Total always includes tax and tip.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Tip       decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals rounds tax to cents: 25.98 at 8.5% is 2.21.
func ComputeTotals(subtotal, taxRate, tip decimal.Decimal) Totals {
	subtotal = subtotal.Round(2)
	tip = tip.Round(2)
	tax := subtotal.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Tip:       tip,
		Total:     subtotal.Add(tax).Add(tip),
	}
}

// LoyaltyPoints is one point per full 10 of the order total, never rounded up.
func LoyaltyPoints(total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(total.Div(ten).Floor().IntPart())
}
