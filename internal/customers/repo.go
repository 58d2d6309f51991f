package customers

import (
	"context"
	"errors"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates customer profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profile repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns (nil, nil) when no profile row exists yet.
func (r *Repository) Get(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert writes the full profile row, creating it on first save.
func (r *Repository) Upsert(ctx context.Context, profile *models.CustomerProfile) error {
	if profile == nil || profile.UserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	profile.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "email", "phone", "address", "updated_at",
			}),
		}).
		Create(profile).Error
}
