package saved

import (
	"context"
	"strings"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/internal/products"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsulates saved-items persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a saved-items repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a saved-item entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	if userID == uuid.Nil || productID <= 0 {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO saved_items (user_id, product_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`,
			userID, productID, time.Now().UTC()).
		Error
}

// RemoveItem deletes the user-product like if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.SavedItem{}).
		Error
}

// IsSaved reports whether the user has saved the product.
func (r *Repository) IsSaved(ctx context.Context, userID uuid.UUID, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListItemIDs returns every product ID the user has saved, newest first.
func (r *Repository) ListItemIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedItem{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type savedProductRecord struct {
	SavedID          int64           `gorm:"column:saved_id"`
	SavedCreatedAt   time.Time       `gorm:"column:saved_created_at"`
	ProductID        int64           `gorm:"column:product_id"`
	Name             string          `gorm:"column:name"`
	Price            decimal.Decimal `gorm:"column:price"`
	ShortDescription string          `gorm:"column:short_description"`
	CreatedAt        time.Time       `gorm:"column:product_created_at"`
	UpdatedAt        time.Time       `gorm:"column:product_updated_at"`
}

// ListItems returns a paginated list of saved products for a user.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedItemsPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	cursorValue := strings.TrimSpace(cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return SavedItemsPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Table("saved_items si").
		Select(strings.Join([]string{
			"si.id AS saved_id",
			"si.created_at AS saved_created_at",
			"p.id AS product_id",
			"p.name",
			"p.price",
			"p.short_description",
			"p.created_at AS product_created_at",
			"p.updated_at AS product_updated_at",
		}, ", ")).
		Joins("JOIN products p ON p.id = si.product_id").
		Where("si.user_id = ? AND p.is_active = ?", userID, true)

	if decodedCursor != nil {
		query = query.Where("(si.created_at < ?) OR (si.created_at = ? AND si.id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("si.created_at DESC").Order("si.id DESC").Limit(limitWithBuffer)

	var records []savedProductRecord
	if err := query.Scan(&records).Error; err != nil {
		return SavedItemsPageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.SavedCreatedAt,
			ID:        last.SavedID,
		})
	}

	items := make([]SavedItemDTO, 0, len(resultRows))
	for _, record := range resultRows {
		items = append(items, SavedItemDTO{
			Product: products.ProductDTO{
				ID:               record.ProductID,
				Name:             record.Name,
				Price:            record.Price,
				ShortDescription: record.ShortDescription,
				CreatedAt:        record.CreatedAt,
				UpdatedAt:        record.UpdatedAt,
			},
			SavedAt: record.SavedCreatedAt,
		})
	}

	totalCount, err := r.countItems(ctx, userID)
	if err != nil {
		return SavedItemsPageDTO{}, err
	}

	prevCursor := ""
	if cursorValue != "" {
		prevCursor = cursorValue
	}

	return SavedItemsPageDTO{
		Items: items,
		Pagination: products.Pagination{
			Total:   int(totalCount),
			Current: cursorValue,
			Prev:    prevCursor,
			Next:    nextCursor,
		},
	}, nil
}

func (r *Repository) countItems(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedItem{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error; err != nil {
		return 0, err
	}
	return count, nil
}
