package reviews

import (
	"context"
	"strconv"
	"testing"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubReviewRepo struct {
	created   []*models.Review
	records   []ReviewRecord
	reviews   map[int64]*models.Review
	reactions map[string]string

	createCalls []string
	updateCalls []string
	deleteCalls []string
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{
		reviews:   map[int64]*models.Review{},
		reactions: map[string]string{},
	}
}

func (s *stubReviewRepo) key(reviewID int64, userID uuid.UUID) string {
	return userID.String() + "#" + strconv.FormatInt(reviewID, 10)
}

func (s *stubReviewRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubReviewRepo) Create(_ context.Context, review *models.Review) error {
	review.ID = int64(len(s.created) + 1)
	s.created = append(s.created, review)
	return nil
}

func (s *stubReviewRepo) ListForProduct(_ context.Context, _ int64) ([]ReviewRecord, error) {
	return s.records, nil
}

func (s *stubReviewRepo) ViewerReactions(_ context.Context, userID uuid.UUID, reviewIDs []int64) (map[int64]string, error) {
	out := map[int64]string{}
	if userID == uuid.Nil {
		return out, nil
	}
	for _, id := range reviewIDs {
		if reaction, ok := s.reactions[s.key(id, userID)]; ok {
			out[id] = reaction
		}
	}
	return out, nil
}

func (s *stubReviewRepo) FindReview(_ context.Context, reviewID int64) (*models.Review, error) {
	review, ok := s.reviews[reviewID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return review, nil
}

func (s *stubReviewRepo) FindReaction(_ context.Context, reviewID int64, userID uuid.UUID) (*models.ReviewReaction, error) {
	reaction, ok := s.reactions[s.key(reviewID, userID)]
	if !ok {
		return nil, nil
	}
	return &models.ReviewReaction{ReviewID: reviewID, UserID: userID, Reaction: reaction}, nil
}

func (s *stubReviewRepo) CreateReaction(_ context.Context, reaction *models.ReviewReaction) error {
	s.reactions[s.key(reaction.ReviewID, reaction.UserID)] = reaction.Reaction
	s.createCalls = append(s.createCalls, reaction.Reaction)
	return nil
}

func (s *stubReviewRepo) UpdateReaction(_ context.Context, reviewID int64, userID uuid.UUID, reaction string) error {
	s.reactions[s.key(reviewID, userID)] = reaction
	s.updateCalls = append(s.updateCalls, reaction)
	return nil
}

func (s *stubReviewRepo) DeleteReaction(_ context.Context, reviewID int64, userID uuid.UUID) error {
	delete(s.reactions, s.key(reviewID, userID))
	s.deleteCalls = append(s.deleteCalls, userID.String())
	return nil
}

type stubReviewProductFinder struct {
	known map[int64]*models.Product
}

func (s *stubReviewProductFinder) FindByID(_ context.Context, id int64) (*models.Product, error) {
	product, ok := s.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

type stubReviewTxRunner struct{}

func (stubReviewTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newReviewTestService(t *testing.T, repo *stubReviewRepo, finder *stubReviewProductFinder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{ReviewRepo: repo, ProductRepo: finder, Tx: stubReviewTxRunner{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateSanitizesAndValidates(t *testing.T) {
	t.Parallel()

	repo := newStubReviewRepo()
	finder := &stubReviewProductFinder{known: map[int64]*models.Product{1: {ID: 1}}}
	svc := newReviewTestService(t, repo, finder)
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, CreateReviewInput{
		ProductID: 1,
		Rating:    5,
		Title:     "  Great   <b>mug</b>  ",
		Content:   "Keeps coffee hot.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Title != "Great bmug/b" {
		t.Fatalf("expected sanitized title, got %q", dto.Title)
	}

	_, err = svc.Create(context.Background(), userID, CreateReviewInput{ProductID: 1, Rating: 6, Title: "x", Content: "y"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for rating, got %v", err)
	}

	_, err = svc.Create(context.Background(), userID, CreateReviewInput{ProductID: 1, Rating: 3, Title: " <> ", Content: "y"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty title, got %v", err)
	}

	_, err = svc.Create(context.Background(), userID, CreateReviewInput{ProductID: 99, Rating: 3, Title: "x", Content: "y"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.Nil, CreateReviewInput{ProductID: 1, Rating: 3, Title: "x", Content: "y"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for guest, got %v", err)
	}
}

func TestReactToggles(t *testing.T) {
	t.Parallel()

	repo := newStubReviewRepo()
	repo.reviews[7] = &models.Review{ID: 7, ProductID: 1}
	svc := newReviewTestService(t, repo, &stubReviewProductFinder{})
	userID := uuid.New()

	if err := svc.React(context.Background(), userID, 7, models.ReactionUp); err != nil {
		t.Fatalf("first react: %v", err)
	}
	if len(repo.createCalls) != 1 {
		t.Fatalf("expected insert on first reaction, got %v", repo.createCalls)
	}

	if err := svc.React(context.Background(), userID, 7, models.ReactionDown); err != nil {
		t.Fatalf("switch react: %v", err)
	}
	if len(repo.updateCalls) != 1 || repo.updateCalls[0] != models.ReactionDown {
		t.Fatalf("expected update on switched reaction, got %v", repo.updateCalls)
	}

	if err := svc.React(context.Background(), userID, 7, models.ReactionDown); err != nil {
		t.Fatalf("repeat react: %v", err)
	}
	if len(repo.deleteCalls) != 1 {
		t.Fatalf("expected delete on repeated reaction, got %v", repo.deleteCalls)
	}

	err := svc.React(context.Background(), userID, 404, models.ReactionUp)
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown review, got %v", err)
	}

	err = svc.React(context.Background(), userID, 7, "sideways")
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad reaction, got %v", err)
	}
}

func TestListForProductMapsViewerReaction(t *testing.T) {
	t.Parallel()

	repo := newStubReviewRepo()
	viewer := uuid.New()
	repo.records = []ReviewRecord{
		{ID: 1, ProductID: 9, FirstName: "Jane", LastName: "Doe", Rating: 5, Title: "A", Content: "B", Upvotes: 2, Downvotes: 1},
		{ID: 2, ProductID: 9, Rating: 3, Title: "C", Content: "D"},
	}
	repo.reactions[repo.key(1, viewer)] = models.ReactionUp
	svc := newReviewTestService(t, repo, &stubReviewProductFinder{})

	dtos, err := svc.ListForProduct(context.Background(), 9, viewer)
	if err != nil {
		t.Fatalf("ListForProduct: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(dtos))
	}
	if dtos[0].Author != "Jane Doe" {
		t.Fatalf("expected profile name, got %q", dtos[0].Author)
	}
	if dtos[1].Author != "Anonymous" {
		t.Fatalf("expected anonymous fallback, got %q", dtos[1].Author)
	}
	if dtos[0].ViewerReaction != models.ReactionUp {
		t.Fatalf("expected viewer reaction on first review, got %q", dtos[0].ViewerReaction)
	}
	if dtos[1].ViewerReaction != "" {
		t.Fatalf("expected no viewer reaction on second review, got %q", dtos[1].ViewerReaction)
	}
}
