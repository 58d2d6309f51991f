package orders

import (
	"context"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the order history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	ListForOwner(ctx context.Context, ownerID string, limit int) ([]models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Create inserts the order row and its item snapshots in one go.
func (r *repository) Create(ctx context.Context, order *models.Order) error {
	if order == nil || order.OwnerID == "" {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).Create(order).Error
}

// ListForOwner returns the owner's orders newest first, items included.
func (r *repository) ListForOwner(ctx context.Context, ownerID string, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
