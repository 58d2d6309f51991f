package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for reviews and their reactions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, review *models.Review) error
	ListForProduct(ctx context.Context, productID int64) ([]ReviewRecord, error)
	ViewerReactions(ctx context.Context, userID uuid.UUID, reviewIDs []int64) (map[int64]string, error)
	FindReview(ctx context.Context, reviewID int64) (*models.Review, error)
	FindReaction(ctx context.Context, reviewID int64, userID uuid.UUID) (*models.ReviewReaction, error)
	CreateReaction(ctx context.Context, reaction *models.ReviewReaction) error
	UpdateReaction(ctx context.Context, reviewID int64, userID uuid.UUID, reaction string) error
	DeleteReaction(ctx context.Context, reviewID int64, userID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

type ReviewRecord struct {
	ID        int64     `gorm:"column:id"`
	ProductID int64     `gorm:"column:product_id"`
	UserID    uuid.UUID `gorm:"column:user_id"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Rating    int       `gorm:"column:rating"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	Upvotes   int       `gorm:"column:upvotes"`
	Downvotes int       `gorm:"column:downvotes"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// ListForProduct returns reviews newest first with their reaction tallies and
// the reviewer's profile name when one exists.
func (r *repository) ListForProduct(ctx context.Context, productID int64) ([]ReviewRecord, error) {
	var records []ReviewRecord
	err := r.db.WithContext(ctx).
		Table("reviews rv").
		Select(strings.Join([]string{
			"rv.id",
			"rv.product_id",
			"rv.user_id",
			"COALESCE(cp.first_name, '') AS first_name",
			"COALESCE(cp.last_name, '') AS last_name",
			"rv.rating",
			"rv.title",
			"rv.content",
			"COALESCE(SUM(CASE WHEN rr.reaction = 'up' THEN 1 ELSE 0 END), 0) AS upvotes",
			"COALESCE(SUM(CASE WHEN rr.reaction = 'down' THEN 1 ELSE 0 END), 0) AS downvotes",
			"rv.created_at",
		}, ", ")).
		Joins("LEFT JOIN customer_profiles cp ON cp.user_id = rv.user_id").
		Joins("LEFT JOIN review_reactions rr ON rr.review_id = rv.id").
		Where("rv.product_id = ?", productID).
		Group("rv.id, rv.product_id, rv.user_id, cp.first_name, cp.last_name, rv.rating, rv.title, rv.content, rv.created_at").
		Order("rv.created_at DESC").
		Order("rv.id DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ViewerReactions returns the viewer's own reaction keyed by review ID.
func (r *repository) ViewerReactions(ctx context.Context, userID uuid.UUID, reviewIDs []int64) (map[int64]string, error) {
	reactions := make(map[int64]string, len(reviewIDs))
	if userID == uuid.Nil || len(reviewIDs) == 0 {
		return reactions, nil
	}

	var rows []models.ReviewReaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND review_id IN ?", userID, reviewIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		reactions[row.ReviewID] = row.Reaction
	}
	return reactions, nil
}

func (r *repository) FindReview(ctx context.Context, reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindReaction returns (nil, nil) when the user has not reacted yet.
func (r *repository) FindReaction(ctx context.Context, reviewID int64, userID uuid.UUID) (*models.ReviewReaction, error) {
	var reaction models.ReviewReaction
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *repository) CreateReaction(ctx context.Context, reaction *models.ReviewReaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *repository) UpdateReaction(ctx context.Context, reviewID int64, userID uuid.UUID, reaction string) error {
	return r.db.WithContext(ctx).
		Model(&models.ReviewReaction{}).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Update("reaction", reaction).Error
}

func (r *repository) DeleteReaction(ctx context.Context, reviewID int64, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.ReviewReaction{}).Error
}
