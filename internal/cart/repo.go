package cart

import (
	"context"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LineRecord is the joined row the repository returns for cart reads.
type LineRecord struct {
	ProductID int64           `gorm:"column:product_id"`
	Name      string          `gorm:"column:name"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price"`
	Quantity  int             `gorm:"column:quantity"`
	AddedAt   time.Time       `gorm:"column:added_at"`
}

// Repository defines persistence operations for cart lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	AddQuantity(ctx context.Context, ownerID string, productID int64, qty int) error
	SetQuantity(ctx context.Context, ownerID string, productID int64, qty int) (bool, error)
	RemoveLine(ctx context.Context, ownerID string, productID int64) error
	Clear(ctx context.Context, ownerID string) error
	ListLines(ctx context.Context, ownerID string) ([]LineRecord, error)
	CountItems(ctx context.Context, ownerID string) (int64, error)
	PurgeGuestCartsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// AddQuantity upserts a cart line, folding repeated adds of the same product
// into one row.
func (r *repository) AddQuantity(ctx context.Context, ownerID string, productID int64, qty int) error {
	line := models.CartItem{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  qty,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + ?", qty),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&line).Error
}

// SetQuantity overwrites the line's quantity and reports whether the line existed.
func (r *repository) SetQuantity(ctx context.Context, ownerID string, productID int64, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Updates(map[string]any{
			"quantity":   qty,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveLine drops the cart line if it exists.
func (r *repository) RemoveLine(ctx context.Context, ownerID string, productID int64) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Delete(&models.CartItem{}).Error
}

// Clear empties the owner's cart.
func (r *repository) Clear(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.CartItem{}).Error
}

// ListLines returns the owner's lines joined with catalog data, oldest first
// so the cart keeps its insertion order.
func (r *repository) ListLines(ctx context.Context, ownerID string) ([]LineRecord, error) {
	var records []LineRecord
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, p.name, p.price AS unit_price, ci.quantity, ci.created_at AS added_at").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.owner_id = ? AND p.is_active = ?", ownerID, true).
		Order("ci.created_at ASC").
		Order("ci.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountItems sums the quantities across the owner's lines. It applies the
// same catalog join as ListLines so the badge count matches the cart view.
func (r *repository) CountItems(ctx context.Context, ownerID string) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("SUM(ci.quantity)").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.owner_id = ? AND p.is_active = ?", ownerID, true).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// PurgeGuestCartsBefore deletes anonymous cart lines untouched since the cutoff.
func (r *repository) PurgeGuestCartsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id LIKE ? AND updated_at < ?", guestOwnerPrefix+"%", cutoff).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
