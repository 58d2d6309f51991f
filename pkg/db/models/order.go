package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the historical record written after a confirmed email hand-off.
// The live cart is cleared once this row exists; nothing reads it back on
// the checkout path.
type Order struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID       string          `gorm:"column:owner_id;not null;index:orders_owner_idx"`
	CustomerEmail string          `gorm:"column:customer_email;not null"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Discount      decimal.Decimal `gorm:"column:discount;type:numeric(10,2);not null"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	Summary       string          `gorm:"column:summary;not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// OrderItem snapshots one cart line at submission time.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null;index:order_items_order_id_idx"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Name      string          `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
}
