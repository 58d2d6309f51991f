package saved

import (
	"context"
	"errors"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type savedRepo interface {
	AddItem(ctx context.Context, userID uuid.UUID, productID int64) error
	RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error
	IsSaved(ctx context.Context, userID uuid.UUID, productID int64) (bool, error)
	ListItemIDs(ctx context.Context, userID uuid.UUID) ([]int64, error)
	ListItems(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedItemsPageDTO, error)
}

// ServiceParams groups dependencies for the saved-items service.
type ServiceParams struct {
	SavedRepo   savedRepo
	ProductRepo productFinder
}

// Service exposes business rules for the saved-items list. Only signed-in
// customers have one; guests see the save control disabled.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedItemsPageDTO, error)
	ListIDs(ctx context.Context, userID uuid.UUID) (SavedIDsDTO, error)
	Add(ctx context.Context, userID uuid.UUID, productID int64) error
	Remove(ctx context.Context, userID uuid.UUID, productID int64) error
	IsSaved(ctx context.Context, userID uuid.UUID, productID int64) (bool, error)
}

type service struct {
	savedRepo   savedRepo
	productRepo productFinder
}

// NewService builds a saved-items service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.SavedRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "saved repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		savedRepo:   params.SavedRepo,
		productRepo: params.ProductRepo,
	}, nil
}

// List returns the paginated saved-items view for a user.
func (s *service) List(ctx context.Context, userID uuid.UUID, cursor string, limit int) (SavedItemsPageDTO, error) {
	if userID == uuid.Nil {
		return SavedItemsPageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view saved items")
	}
	page, err := s.savedRepo.ListItems(ctx, userID, cursor, limit)
	if err != nil {
		return SavedItemsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list saved items")
	}
	return page, nil
}

// ListIDs returns all saved product IDs for the user.
func (s *service) ListIDs(ctx context.Context, userID uuid.UUID) (SavedIDsDTO, error) {
	if userID == uuid.Nil {
		return SavedIDsDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view saved items")
	}
	ids, err := s.savedRepo.ListItemIDs(ctx, userID)
	if err != nil {
		return SavedIDsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list saved item ids")
	}
	return SavedIDsDTO{ProductIDs: ids}, nil
}

// Add ensures the product exists and saves it. Saving twice is a no-op.
func (s *service) Add(ctx context.Context, userID uuid.UUID, productID int64) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to save items")
	}
	if productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.savedRepo.AddItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save item")
	}
	return nil
}

// Remove drops the saved entry regardless of prior state.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, productID int64) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to manage saved items")
	}
	if err := s.savedRepo.RemoveItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove saved item")
	}
	return nil
}

// IsSaved reports whether the user has saved the product.
func (s *service) IsSaved(ctx context.Context, userID uuid.UUID, productID int64) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	savedFlag, err := s.savedRepo.IsSaved(ctx, userID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check saved item")
	}
	return savedFlag, nil
}
