package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedItem links a customer to a liked product.
type SavedItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:saved_items_user_id_idx;uniqueIndex:saved_items_user_product_key"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:saved_items_user_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
