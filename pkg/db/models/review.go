package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer rating and write-up for a product.
type Review struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null;index:reviews_product_id_idx"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// ReviewReaction is a single thumbs up/down vote. One vote per user per
// review; switching direction updates the row in place.
type ReviewReaction struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ReviewID  int64     `gorm:"column:review_id;not null;index:review_reactions_review_id_idx;uniqueIndex:review_reactions_review_user_key"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:review_reactions_review_user_key"`
	Reaction  string    `gorm:"column:reaction;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

const (
	ReactionUp   = "up"
	ReactionDown = "down"
)
