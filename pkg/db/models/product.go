package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product mirrors the externally managed catalog listing. IDs are assigned
// by the catalog, not generated here, and the storefront never mutates rows.
type Product struct {
	ID               int64           `gorm:"column:id;primaryKey"`
	Name             string          `gorm:"column:name;not null"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Description      string          `gorm:"column:description;not null;default:''"`
	ShortDescription string          `gorm:"column:short_description;not null;default:''"`
	Tags             pq.StringArray  `gorm:"column:tags;type:text[]"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true"`
	Images           []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage is one entry of a product's ordered image list.
type ProductImage struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64  `gorm:"column:product_id;not null;index:product_images_product_id_idx"`
	ImageURL  string `gorm:"column:image_url;not null"`
	Position  int    `gorm:"column:position;not null;default:0"`
}
