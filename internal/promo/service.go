package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AppliedDTO is the active discount reported back to the cart UI.
type AppliedDTO struct {
	Code      string    `json:"code"`
	Percent   int       `json:"percent"`
	AppliedAt time.Time `json:"applied_at"`
}

// Service exposes promo code application for a cart owner. At most one code
// can be active per owner at a time.
type Service interface {
	Apply(ctx context.Context, ownerID, code string) (*AppliedDTO, error)
	Remove(ctx context.Context, ownerID string) error
	Active(ctx context.Context, ownerID string) (*AppliedDTO, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a promo service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo repo is required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Apply validates the code, consumes one use, and pins the discount to the
// owner's cart. The use counter and the applied row move together inside one
// transaction, so a failure on either side leaves both untouched.
func (s *service) Apply(ctx context.Context, ownerID, code string) (*AppliedDTO, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo code is required")
	}

	var applied *models.AppliedPromo
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.ActiveForOwner(ctx, ownerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applied promo")
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "a promo code is already applied")
		}

		promo, err := repo.FindByName(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invalid promo code")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promo code")
		}

		consumed, err := repo.ConsumeUse(ctx, promo.Name)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume promo use")
		}
		if !consumed {
			return pkgerrors.New(pkgerrors.CodeExpired, "promo code has expired")
		}

		applied = &models.AppliedPromo{
			OwnerID:   ownerID,
			PromoName: promo.Name,
			Percent:   promo.Value,
		}
		if err := repo.CreateApplied(ctx, applied); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a promo code is already applied")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save applied promo")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AppliedDTO{
		Code:      applied.PromoName,
		Percent:   applied.Percent,
		AppliedAt: applied.CreatedAt,
	}, nil
}

// Remove clears the owner's discount and returns the use to the pool. Removing
// when nothing is applied fails with a not-found error.
func (s *service) Remove(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.ActiveForOwner(ctx, ownerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applied promo")
		}
		if existing == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no promo code is applied")
		}

		deleted, err := repo.DeleteApplied(ctx, ownerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear applied promo")
		}
		if !deleted {
			return nil
		}
		if err := repo.RestoreUse(ctx, existing.PromoName); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore promo use")
		}
		return nil
	})
}

// Active returns the owner's applied discount, or nil when none is set.
func (s *service) Active(ctx context.Context, ownerID string) (*AppliedDTO, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}
	applied, err := s.repo.ActiveForOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applied promo")
	}
	if applied == nil {
		return nil, nil
	}
	return &AppliedDTO{
		Code:      applied.PromoName,
		Percent:   applied.Percent,
		AppliedAt: applied.CreatedAt,
	}, nil
}
