package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/pagination"
	"gorm.io/gorm"
)

// Repository encapsulates catalog persistence. The storefront treats the
// catalog as read-only; rows are loaded by migrations or an external sync.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads one active product with its ordered image list.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the active products for the given IDs, unordered.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns one cursor page of active products matching the filters.
// The query string must already be sanitized by the service layer.
func (r *Repository) List(ctx context.Context, input ListInput) (ProductPage, error) {
	normalizedLimit := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)
	cursorValue := strings.TrimSpace(input.Pagination.Cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return ProductPage{}, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("is_active = ?", true)

	query = applyFilters(query, input.Filters)

	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var rows []models.Product
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&rows).Error; err != nil {
		return ProductPage{}, err
	}

	resultRows := rows
	nextCursor := ""
	if len(rows) > normalizedLimit {
		resultRows = rows[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	items := make([]ProductDTO, 0, len(resultRows))
	for i := range resultRows {
		items = append(items, *NewProductDTO(&resultRows[i]))
	}

	totalCount, err := r.countProducts(ctx, input.Filters)
	if err != nil {
		return ProductPage{}, err
	}
	firstCursor, err := r.fetchBoundaryCursor(ctx, input.Filters, true)
	if err != nil {
		return ProductPage{}, err
	}
	lastCursor, err := r.fetchBoundaryCursor(ctx, input.Filters, false)
	if err != nil {
		return ProductPage{}, err
	}

	prevCursor := ""
	if cursorValue != "" {
		prevCursor = cursorValue
	}

	return ProductPage{
		Items: items,
		Pagination: Pagination{
			Total:   int(totalCount),
			Current: cursorValue,
			First:   firstCursor,
			Last:    lastCursor,
			Prev:    prevCursor,
			Next:    nextCursor,
		},
	}, nil
}

func applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where(
			"name ILIKE ? OR description ILIKE ? OR short_description ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filters.Tag != "" {
		query = query.Where("? = ANY(tags)", filters.Tag)
	}
	return query
}

func (r *Repository) countProducts(ctx context.Context, filters ListFilters) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)
	query = applyFilters(query, filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) fetchBoundaryCursor(ctx context.Context, filters ListFilters, ascending bool) (string, error) {
	order := "created_at DESC, id DESC"
	if ascending {
		order = "created_at ASC, id ASC"
	}

	var row struct {
		CreatedAt time.Time
		ID        int64
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("created_at", "id").
		Where("is_active = ?", true)
	query = applyFilters(query, filters)

	if err := query.Order(order).Limit(1).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	return pagination.EncodeCursor(pagination.Cursor{
		CreatedAt: row.CreatedAt,
		ID:        row.ID,
	}), nil
}
