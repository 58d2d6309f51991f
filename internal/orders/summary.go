package orders

import (
	"fmt"
	"strings"

	"github.com/RedaKaafarani1/ecomwebsite/internal/cart"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/validation"
	"github.com/shopspring/decimal"
)

// Totals carries the priced-out cart figures for an order.
type Totals struct {
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	DiscountPercent int
}

// FormatOrderSummary renders the deterministic text block handed to the
// email service. The discount line appears only when a promo is applied.
func FormatOrderSummary(lines []cart.LineRecord, info validation.CustomerInfo, totals Totals) string {
	var b strings.Builder

	b.WriteString("Order Summary:\n\n")
	for _, line := range lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		fmt.Fprintf(&b, "- %s (Quantity: %d) - $%s\n", line.Name, line.Quantity, lineTotal.StringFixed(2))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", totals.Subtotal.StringFixed(2))
	if totals.DiscountPercent > 0 {
		fmt.Fprintf(&b, "Discount (%d%%): -$%s\n", totals.DiscountPercent, totals.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s\n", totals.Total.StringFixed(2))

	b.WriteString("\nCustomer:\n")
	fmt.Fprintf(&b, "%s %s\n", info.FirstName, info.LastName)
	fmt.Fprintf(&b, "%s\n", info.Email)
	fmt.Fprintf(&b, "%s\n", info.Phone)
	fmt.Fprintf(&b, "%s\n", info.Address)

	return b.String()
}
