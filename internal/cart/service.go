package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/RedaKaafarani1/ecomwebsite/internal/promo"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type discountSource interface {
	Active(ctx context.Context, ownerID string) (*promo.AppliedDTO, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    Repository
	ProductRepo productFinder
	Discounts   discountSource
}

// Service exposes cart mutation and read operations for one owner key.
type Service interface {
	Add(ctx context.Context, ownerID string, productID int64, qty int) error
	UpdateQuantity(ctx context.Context, ownerID string, productID int64, qty int) error
	Remove(ctx context.Context, ownerID string, productID int64) error
	Clear(ctx context.Context, ownerID string) error
	Get(ctx context.Context, ownerID string) (CartDTO, error)
	TotalItems(ctx context.Context, ownerID string) (int, error)
}

type service struct {
	cartRepo    Repository
	productRepo productFinder
	discounts   discountSource
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Discounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount source is required")
	}
	return &service{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		discounts:   params.Discounts,
	}, nil
}

// Add puts qty units of a product into the cart, folding repeats into one line.
func (s *service) Add(ctx context.Context, ownerID string, productID int64, qty int) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.cartRepo.AddQuantity(ctx, ownerID, productID, qty); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart line")
	}
	return nil
}

// UpdateQuantity overwrites a line's quantity. Zero or negative removes the line.
func (s *service) UpdateQuantity(ctx context.Context, ownerID string, productID int64, qty int) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if qty <= 0 {
		return s.Remove(ctx, ownerID, productID)
	}
	updated, err := s.cartRepo.SetQuantity(ctx, ownerID, productID, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return nil
}

// Remove drops the line regardless of prior state.
func (s *service) Remove(ctx context.Context, ownerID string, productID int64) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.cartRepo.RemoveLine(ctx, ownerID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart line")
	}
	return nil
}

// Clear empties the cart.
func (s *service) Clear(ctx context.Context, ownerID string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.cartRepo.Clear(ctx, ownerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// Get returns the cart lines plus the money summary, with any applied
// discount folded in.
func (s *service) Get(ctx context.Context, ownerID string) (CartDTO, error) {
	if err := requireOwner(ownerID); err != nil {
		return CartDTO{}, err
	}

	records, err := s.cartRepo.ListLines(ctx, ownerID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}

	items := make([]LineDTO, 0, len(records))
	subtotal := decimal.Zero
	totalItems := 0
	for _, record := range records {
		lineTotal := record.UnitPrice.Mul(decimal.NewFromInt(int64(record.Quantity))).Round(2)
		items = append(items, LineDTO{
			ProductID: record.ProductID,
			Name:      record.Name,
			UnitPrice: record.UnitPrice,
			Quantity:  record.Quantity,
			LineTotal: lineTotal,
			AddedAt:   record.AddedAt,
		})
		subtotal = subtotal.Add(lineTotal)
		totalItems += record.Quantity
	}

	applied, err := s.discounts.Active(ctx, ownerID)
	if err != nil {
		return CartDTO{}, err
	}

	percent := 0
	if applied != nil {
		percent = applied.Percent
	}
	discount, total := promo.ComputeTotals(subtotal, percent)

	return CartDTO{
		Items:      items,
		TotalItems: totalItems,
		Subtotal:   subtotal.Round(2),
		Promo:      applied,
		Discount:   discount,
		Total:      total,
	}, nil
}

// TotalItems returns the badge count without loading the full cart.
func (s *service) TotalItems(ctx context.Context, ownerID string) (int, error) {
	if err := requireOwner(ownerID); err != nil {
		return 0, err
	}
	count, err := s.cartRepo.CountItems(ctx, ownerID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart items")
	}
	return int(count), nil
}

func requireOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}
	return nil
}
