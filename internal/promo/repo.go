package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for promotions and the per-owner
// applied discount.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByName(ctx context.Context, name string) (*models.Promotion, error)
	ConsumeUse(ctx context.Context, name string) (bool, error)
	RestoreUse(ctx context.Context, name string) error
	CreateApplied(ctx context.Context, applied *models.AppliedPromo) error
	ActiveForOwner(ctx context.Context, ownerID string) (*models.AppliedPromo, error)
	DeleteApplied(ctx context.Context, ownerID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a promo repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// FindByName loads a promotion by its exact code.
func (r *repository) FindByName(ctx context.Context, name string) (*models.Promotion, error) {
	var promo models.Promotion
	err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// ConsumeUse decrements the remaining-use counter only while uses remain.
// The conditional update makes concurrent redemptions of the last use race
// safely: exactly one caller sees consumed=true.
func (r *repository) ConsumeUse(ctx context.Context, name string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("name = ? AND remaining_uses > 0", strings.TrimSpace(name)).
		Updates(map[string]any{
			"remaining_uses": gorm.Expr("remaining_uses - 1"),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RestoreUse returns one use to the counter when a discount is taken off a cart.
func (r *repository) RestoreUse(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("name = ?", strings.TrimSpace(name)).
		Updates(map[string]any{
			"remaining_uses": gorm.Expr("remaining_uses + 1"),
			"updated_at":     time.Now().UTC(),
		}).Error
}

// CreateApplied records the active discount for a cart owner. The unique
// owner index surfaces a duplicate-key error when one is already applied.
func (r *repository) CreateApplied(ctx context.Context, applied *models.AppliedPromo) error {
	return r.db.WithContext(ctx).Create(applied).Error
}

// ActiveForOwner returns the owner's applied discount, or nil when none is set.
func (r *repository) ActiveForOwner(ctx context.Context, ownerID string) (*models.AppliedPromo, error) {
	var applied models.AppliedPromo
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&applied).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &applied, nil
}

// DeleteApplied removes the owner's applied discount and reports whether a
// row existed.
func (r *repository) DeleteApplied(ctx context.Context, ownerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.AppliedPromo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
