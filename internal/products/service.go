package products

import (
	"context"
	"errors"
	"strings"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/validation"
	"gorm.io/gorm"
)

// catalogRepo is the persistence surface the service needs; satisfied by
// *Repository and stubbed in tests.
type catalogRepo interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, input ListInput) (ProductPage, error)
}

// Service exposes read operations over the catalog.
type Service interface {
	List(ctx context.Context, input ListInput) (ProductPage, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
}

type service struct {
	repo catalogRepo
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo catalogRepo) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo}, nil
}

// List sanitizes the search query and returns a cursor page. A query that
// sanitizes down to nothing falls back to an unfiltered browse.
func (s *service) List(ctx context.Context, input ListInput) (ProductPage, error) {
	input.Filters.Query = validation.SanitizeSearchQuery(input.Filters.Query)
	input.Filters.Tag = strings.TrimSpace(input.Filters.Tag)

	page, err := s.repo.List(ctx, input)
	if err != nil {
		return ProductPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return page, nil
}

// Get returns one active product or a not-found error.
func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}
