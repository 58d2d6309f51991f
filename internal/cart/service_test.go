package cart

import (
	"context"
	"testing"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/internal/promo"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubCartRepo struct {
	lines     []LineRecord
	addCalls  []int64
	setResult bool
	removed   []int64
	cleared   bool
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCartRepo) AddQuantity(ctx context.Context, ownerID string, productID int64, qty int) error {
	s.addCalls = append(s.addCalls, productID)
	return nil
}

func (s *stubCartRepo) SetQuantity(ctx context.Context, ownerID string, productID int64, qty int) (bool, error) {
	return s.setResult, nil
}

func (s *stubCartRepo) RemoveLine(ctx context.Context, ownerID string, productID int64) error {
	s.removed = append(s.removed, productID)
	return nil
}

func (s *stubCartRepo) Clear(ctx context.Context, ownerID string) error {
	s.cleared = true
	return nil
}

func (s *stubCartRepo) ListLines(ctx context.Context, ownerID string) ([]LineRecord, error) {
	return s.lines, nil
}

func (s *stubCartRepo) CountItems(ctx context.Context, ownerID string) (int64, error) {
	var total int64
	for _, line := range s.lines {
		total += int64(line.Quantity)
	}
	return total, nil
}

func (s *stubCartRepo) PurgeGuestCartsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type stubProductFinder struct {
	known map[int64]bool
}

func (s *stubProductFinder) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	if s.known[id] {
		return &models.Product{ID: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubDiscounts struct {
	applied *promo.AppliedDTO
}

func (s *stubDiscounts) Active(ctx context.Context, ownerID string) (*promo.AppliedDTO, error) {
	return s.applied, nil
}

func newCartService(t *testing.T, repo Repository, finder productFinder, discounts discountSource) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		CartRepo:    repo,
		ProductRepo: finder,
		Discounts:   discounts,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddRequiresExistingProduct(t *testing.T) {
	t.Parallel()
	repo := &stubCartRepo{}
	svc := newCartService(t, repo, &stubProductFinder{known: map[int64]bool{1: true}}, &stubDiscounts{})

	if err := svc.Add(context.Background(), "guest:abc", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(repo.addCalls) != 1 {
		t.Fatalf("expected one repo add, got %d", len(repo.addCalls))
	}

	err := svc.Add(context.Background(), "guest:abc", 42, 1)
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}

	err = svc.Add(context.Background(), "guest:abc", 1, 0)
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for zero qty, got %v", err)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	t.Parallel()
	repo := &stubCartRepo{setResult: true}
	svc := newCartService(t, repo, &stubProductFinder{}, &stubDiscounts{})

	if err := svc.UpdateQuantity(context.Background(), "guest:abc", 1, 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(repo.removed) != 1 || repo.removed[0] != 1 {
		t.Fatalf("expected removal, got %v", repo.removed)
	}

	if err := svc.UpdateQuantity(context.Background(), "guest:abc", 1, 3); err != nil {
		t.Fatalf("update: %v", err)
	}

	repo.setResult = false
	err := svc.UpdateQuantity(context.Background(), "guest:abc", 9, 3)
	if got := pkgerrors.As(err); got == nil || got.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing line, got %v", err)
	}
}

func TestGetComputesTotalsWithoutPromo(t *testing.T) {
	t.Parallel()
	repo := &stubCartRepo{
		lines: []LineRecord{
			{ProductID: 1, Name: "Enamel Mug", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2},
			{ProductID: 2, Name: "Wool Blanket", UnitPrice: decimal.RequireFromString("49.99"), Quantity: 1},
		},
	}
	svc := newCartService(t, repo, &stubProductFinder{}, &stubDiscounts{})

	dto, err := svc.Get(context.Background(), "guest:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dto.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", dto.TotalItems)
	}
	if dto.Subtotal.StringFixed(2) != "74.99" {
		t.Fatalf("expected subtotal 74.99, got %s", dto.Subtotal.StringFixed(2))
	}
	if !dto.Discount.IsZero() {
		t.Fatalf("expected no discount, got %s", dto.Discount)
	}
	if dto.Total.StringFixed(2) != "74.99" {
		t.Fatalf("expected total 74.99, got %s", dto.Total.StringFixed(2))
	}
	if dto.Items[0].LineTotal.StringFixed(2) != "25.00" {
		t.Fatalf("expected line total 25.00, got %s", dto.Items[0].LineTotal.StringFixed(2))
	}
}

func TestGetAppliesActiveDiscount(t *testing.T) {
	t.Parallel()
	repo := &stubCartRepo{
		lines: []LineRecord{
			{ProductID: 1, Name: "Enamel Mug", UnitPrice: decimal.RequireFromString("50.00"), Quantity: 2},
		},
	}
	discounts := &stubDiscounts{applied: &promo.AppliedDTO{Code: "SUMMER10", Percent: 10}}
	svc := newCartService(t, repo, &stubProductFinder{}, discounts)

	dto, err := svc.Get(context.Background(), "guest:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dto.Promo == nil || dto.Promo.Code != "SUMMER10" {
		t.Fatalf("expected promo on cart, got %+v", dto.Promo)
	}
	if dto.Discount.StringFixed(2) != "10.00" {
		t.Fatalf("expected discount 10.00, got %s", dto.Discount.StringFixed(2))
	}
	if dto.Total.StringFixed(2) != "90.00" {
		t.Fatalf("expected total 90.00, got %s", dto.Total.StringFixed(2))
	}
}

func TestOwnerRequired(t *testing.T) {
	t.Parallel()
	svc := newCartService(t, &stubCartRepo{}, &stubProductFinder{}, &stubDiscounts{})

	if err := svc.Clear(context.Background(), "  "); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.TotalItems(context.Background(), ""); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOwnerKeyHelpers(t *testing.T) {
	t.Parallel()
	if !IsGuestOwner(GuestOwnerID("abc")) {
		t.Fatal("guest owner key not recognized")
	}
	if IsGuestOwner("user:123") {
		t.Fatal("user owner key misclassified as guest")
	}
}
