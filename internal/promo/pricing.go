package promo

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals applies a percent discount to a subtotal. Both outputs are
// rounded to cents; total is derived from the rounded discount so the three
// figures always reconcile.
func ComputeTotals(subtotal decimal.Decimal, percent int) (discount, total decimal.Decimal) {
	subtotal = subtotal.Round(2)
	if percent <= 0 {
		return decimal.Zero.Round(2), subtotal
	}
	if percent > 100 {
		percent = 100
	}
	discount = subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(oneHundred).Round(2)
	total = subtotal.Sub(discount)
	return discount, total
}
