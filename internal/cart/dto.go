package cart

import (
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/internal/promo"
	"github.com/shopspring/decimal"
)

// LineDTO is one cart row joined with its catalog listing.
type LineDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartDTO is the full cart view: lines plus the money summary the checkout
// panel renders.
type CartDTO struct {
	Items      []LineDTO         `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Promo      *promo.AppliedDTO `json:"promo,omitempty"`
	Discount   decimal.Decimal   `json:"discount"`
	Total      decimal.Decimal   `json:"total"`
}
