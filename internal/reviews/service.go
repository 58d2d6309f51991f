package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

// ServiceParams groups dependencies for the reviews service.
type ServiceParams struct {
	ReviewRepo  Repository
	ProductRepo productFinder
	Tx          txRunner
}

// Service exposes review submission, listing, and the up/down reaction toggle.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	ListForProduct(ctx context.Context, productID int64, viewer uuid.UUID) ([]ReviewDTO, error)
	React(ctx context.Context, userID uuid.UUID, reviewID int64, reaction string) error
}

type service struct {
	repo        Repository
	productRepo productFinder
	tx          txRunner
}

// NewService builds a reviews service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReviewRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{
		repo:        params.ReviewRepo,
		productRepo: params.ProductRepo,
		tx:          params.Tx,
	}, nil
}

// Create validates and stores a review for an active product.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to leave a review")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	title := validation.SanitizeText(input.Title)
	content := validation.SanitizeText(input.Content)
	if title == "" || content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review title and content are required")
	}
	if len(title) > validation.MaxReviewTitle {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review title is too long")
	}
	if len(content) > validation.MaxReviewContent {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review content is too long")
	}

	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     title,
		Content:   content,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	return &ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Title:     review.Title,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
	}, nil
}

// ListForProduct returns reviews newest first with tallies and, when the
// viewer is signed in, their own reaction per review.
func (s *service) ListForProduct(ctx context.Context, productID int64, viewer uuid.UUID) ([]ReviewDTO, error) {
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	records, err := s.repo.ListForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	viewerReactions, err := s.repo.ViewerReactions(ctx, viewer, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load viewer reactions")
	}

	dtos := make([]ReviewDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, ReviewDTO{
			ID:             record.ID,
			ProductID:      record.ProductID,
			Author:         authorName(record.FirstName, record.LastName),
			Rating:         record.Rating,
			Title:          record.Title,
			Content:        record.Content,
			Upvotes:        record.Upvotes,
			Downvotes:      record.Downvotes,
			ViewerReaction: viewerReactions[record.ID],
			CreatedAt:      record.CreatedAt,
		})
	}
	return dtos, nil
}

// React toggles the caller's vote on a review. Repeating the same reaction
// clears it; a different reaction replaces the previous one.
func (s *service) React(ctx context.Context, userID uuid.UUID, reviewID int64, reaction string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to react to reviews")
	}
	if reviewID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if reaction != models.ReactionUp && reaction != models.ReactionDown {
		return pkgerrors.New(pkgerrors.CodeValidation, "reaction must be up or down")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindReview(ctx, reviewID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
		}

		existing, err := repo.FindReaction(ctx, reviewID, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reaction")
		}

		switch {
		case existing == nil:
			err = repo.CreateReaction(ctx, &models.ReviewReaction{
				ReviewID: reviewID,
				UserID:   userID,
				Reaction: reaction,
			})
		case existing.Reaction == reaction:
			err = repo.DeleteReaction(ctx, reviewID, userID)
		default:
			err = repo.UpdateReaction(ctx, reviewID, userID, reaction)
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reaction")
		}
		return nil
	})
	return err
}

func authorName(first, last string) string {
	full := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if full == "" {
		return "Anonymous"
	}
	return full
}
