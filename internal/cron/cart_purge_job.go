package cron

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
)

const defaultGuestRetention = 30 * 24 * time.Hour

type guestCartPurger interface {
	PurgeGuestCartsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type appliedPromoPurger interface {
	PurgeOrphanedGuestApplied(ctx context.Context) (int64, error)
}

// CartPurgeJobParams configure the stale guest cart job.
type CartPurgeJobParams struct {
	Logger    *logger.Logger
	CartRepo  guestCartPurger
	PromoRepo appliedPromoPurger
	Retention time.Duration
	Now       func() time.Time
}

type cartPurgeJob struct {
	logg      *logger.Logger
	cartRepo  guestCartPurger
	promoRepo appliedPromoPurger
	retention time.Duration
	now       func() time.Time
}

// NewCartPurgeJob builds the cron job that drops guest carts older than the
// retention window, along with any discount still pinned to them.
func NewCartPurgeJob(params CartPurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.PromoRepo == nil {
		return nil, fmt.Errorf("promo repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultGuestRetention
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &cartPurgeJob{
		logg:      params.Logger,
		cartRepo:  params.CartRepo,
		promoRepo: params.PromoRepo,
		retention: retention,
		now:       now,
	}, nil
}

func (j *cartPurgeJob) Name() string { return "guest_cart_purge" }

// Run deletes stale guest cart lines first, then applied promos whose guest
// cart no longer exists. Purged discounts stay consumed.
func (j *cartPurgeJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)

	var errs []error

	purgedLines, err := j.cartRepo.PurgeGuestCartsBefore(ctx, cutoff)
	if err != nil {
		errs = append(errs, fmt.Errorf("purge guest carts: %w", err))
	}

	purgedPromos, err := j.promoRepo.PurgeOrphanedGuestApplied(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("purge orphaned applied promos: %w", err))
	}

	if len(errs) > 0 {
		return multierr.Combine(errs...)
	}

	runCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":        cutoff.Format(time.RFC3339),
		"purged_lines":  purgedLines,
		"purged_promos": purgedPromos,
	})
	j.logg.Info(runCtx, "guest cart purge finished")
	return nil
}

// PurgeOrphanedGuestApplied is implemented here rather than in the promo
// repository interface because only the cron worker ever calls it.
type OrphanedPromoRepo struct {
	db *gorm.DB
}

// NewOrphanedPromoRepo constructs the cleanup repo bound to the provided gorm DB.
func NewOrphanedPromoRepo(db *gorm.DB) *OrphanedPromoRepo {
	return &OrphanedPromoRepo{db: db}
}

// PurgeOrphanedGuestApplied deletes applied promos held by guest owners that
// no longer have any cart line.
func (r *OrphanedPromoRepo) PurgeOrphanedGuestApplied(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(strings.TrimSpace(`
DELETE FROM applied_promos
WHERE owner_id LIKE 'guest:%'
  AND NOT EXISTS (
    SELECT 1 FROM cart_items ci WHERE ci.owner_id = applied_promos.owner_id
  )`))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
