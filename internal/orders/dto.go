package orders

import (
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/shopspring/decimal"
)

// OrderItemDTO is one snapshotted line of a past order.
type OrderItemDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// OrderDTO is a past order as shown in the account history.
type OrderDTO struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItemDTO  `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewOrderDTO maps a stored order row to its API shape.
func NewOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return OrderDTO{
		ID:        order.ID,
		Email:     order.CustomerEmail,
		Subtotal:  order.Subtotal,
		Discount:  order.Discount,
		Total:     order.Total,
		Items:     items,
		CreatedAt: order.CreatedAt,
	}
}
