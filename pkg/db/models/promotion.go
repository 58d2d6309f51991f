package models

import "time"

// Promotion is a percent-off code with a shared use counter. Codes are seeded
// and managed externally; the storefront only decrements and restores uses.
type Promotion struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string    `gorm:"column:name;not null;uniqueIndex:promotions_name_key"`
	Value         int       `gorm:"column:value;not null"`
	RemainingUses int       `gorm:"column:remaining_uses;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// AppliedPromo records the one active discount for a cart owner.
type AppliedPromo struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID   string    `gorm:"column:owner_id;not null;uniqueIndex:applied_promos_owner_key"`
	PromoName string    `gorm:"column:promo_name;not null"`
	Percent   int       `gorm:"column:percent;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
