package saved

import (
	"context"
	"errors"
	"testing"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubSavedRepo struct {
	added    []int64
	removed  []int64
	saved    map[int64]bool
	listErr  error
	page     SavedItemsPageDTO
	itemIDs  []int64
	lastUser uuid.UUID
}

func (s *stubSavedRepo) AddItem(_ context.Context, userID uuid.UUID, productID int64) error {
	s.lastUser = userID
	s.added = append(s.added, productID)
	return nil
}

func (s *stubSavedRepo) RemoveItem(_ context.Context, userID uuid.UUID, productID int64) error {
	s.lastUser = userID
	s.removed = append(s.removed, productID)
	return nil
}

func (s *stubSavedRepo) IsSaved(_ context.Context, _ uuid.UUID, productID int64) (bool, error) {
	return s.saved[productID], nil
}

func (s *stubSavedRepo) ListItemIDs(_ context.Context, userID uuid.UUID) ([]int64, error) {
	s.lastUser = userID
	return s.itemIDs, s.listErr
}

func (s *stubSavedRepo) ListItems(_ context.Context, userID uuid.UUID, _ string, _ int) (SavedItemsPageDTO, error) {
	s.lastUser = userID
	return s.page, s.listErr
}

type stubSavedProductFinder struct {
	known map[int64]*models.Product
}

func (s *stubSavedProductFinder) FindByID(_ context.Context, id int64) (*models.Product, error) {
	product, ok := s.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func newSavedTestService(t *testing.T, repo *stubSavedRepo, finder *stubSavedProductFinder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{SavedRepo: repo, ProductRepo: finder})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceAddChecksProductExists(t *testing.T) {
	t.Parallel()

	repo := &stubSavedRepo{}
	finder := &stubSavedProductFinder{known: map[int64]*models.Product{
		42: {ID: 42, Name: "Enamel Mug"},
	}}
	svc := newSavedTestService(t, repo, finder)
	userID := uuid.New()

	if err := svc.Add(context.Background(), userID, 42); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(repo.added) != 1 || repo.added[0] != 42 {
		t.Fatalf("expected product 42 saved, got %v", repo.added)
	}
	if repo.lastUser != userID {
		t.Fatalf("expected save scoped to user %s, got %s", userID, repo.lastUser)
	}

	err := svc.Add(context.Background(), userID, 999)
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
	if len(repo.added) != 1 {
		t.Fatalf("unknown product must not be saved, got %v", repo.added)
	}
}

func TestServiceRequiresSignedInUser(t *testing.T) {
	t.Parallel()

	repo := &stubSavedRepo{}
	finder := &stubSavedProductFinder{}
	svc := newSavedTestService(t, repo, finder)

	if code := pkgerrors.As(svc.Add(context.Background(), uuid.Nil, 1)).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on add, got %s", code)
	}
	if code := pkgerrors.As(svc.Remove(context.Background(), uuid.Nil, 1)).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on remove, got %s", code)
	}
	_, err := svc.List(context.Background(), uuid.Nil, "", 10)
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on list, got %v", err)
	}

	savedFlag, err := svc.IsSaved(context.Background(), uuid.Nil, 1)
	if err != nil || savedFlag {
		t.Fatalf("guests are never saved: flag=%v err=%v", savedFlag, err)
	}
}

func TestServiceAddValidatesProductID(t *testing.T) {
	t.Parallel()

	svc := newSavedTestService(t, &stubSavedRepo{}, &stubSavedProductFinder{})
	err := svc.Add(context.Background(), uuid.New(), 0)
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceListIDsWrapsRepoErrors(t *testing.T) {
	t.Parallel()

	repo := &stubSavedRepo{itemIDs: []int64{7, 3}}
	svc := newSavedTestService(t, repo, &stubSavedProductFinder{})
	userID := uuid.New()

	ids, err := svc.ListIDs(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if len(ids.ProductIDs) != 2 || ids.ProductIDs[0] != 7 {
		t.Fatalf("unexpected ids: %v", ids.ProductIDs)
	}

	repo.listErr = errors.New("connection reset")
	_, err = svc.ListIDs(context.Background(), userID)
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceRemoveDelegates(t *testing.T) {
	t.Parallel()

	repo := &stubSavedRepo{}
	svc := newSavedTestService(t, repo, &stubSavedProductFinder{})

	if err := svc.Remove(context.Background(), uuid.New(), 9); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(repo.removed) != 1 || repo.removed[0] != 9 {
		t.Fatalf("expected product 9 removed, got %v", repo.removed)
	}
}
