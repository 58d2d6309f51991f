package models

import "time"

// CartItem is one cart line. OwnerID scopes the cart: "user:<uuid>" for a
// signed-in customer, "guest:<token>" for an anonymous session. The unique
// index keeps at most one line per product within a cart.
type CartItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID   string    `gorm:"column:owner_id;not null;index:cart_items_owner_idx;uniqueIndex:cart_items_owner_product_key"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:cart_items_owner_product_key"`
	Quantity  int       `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
