package customers

import (
	"context"
	"testing"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProfileTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	profiles := `
CREATE TABLE IF NOT EXISTS customer_profiles (
  user_id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(profiles).Error)
	return db
}

func TestProfileUpsertAndGet(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	profile, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, profile, "no row before the first save")

	require.NoError(t, repo.Upsert(ctx, &models.CustomerProfile{
		UserID:    userID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	}))

	require.NoError(t, repo.Upsert(ctx, &models.CustomerProfile{
		UserID:    userID,
		FirstName: "Janet",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+1 (555) 010-0100",
		Address:   "1 Main St",
	}))

	profile, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Janet", profile.FirstName, "second save updates in place")
	assert.Equal(t, "+1 (555) 010-0100", profile.Phone)

	var count int64
	require.NoError(t, db.Model(&models.CustomerProfile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProfileUpsertRejectsInvalidInput(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Upsert(ctx, nil), gorm.ErrInvalidValue)
	assert.ErrorIs(t, repo.Upsert(ctx, &models.CustomerProfile{}), gorm.ErrInvalidValue)
}
