package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/api/validators"
	reviewsvc "github.com/RedaKaafarani1/ecomwebsite/internal/reviews"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
)

type createReviewPayload struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type reviewReactionPayload struct {
	Reaction string `json:"reaction" validate:"required,oneof=up down"`
}

// ReviewList returns a product's reviews with vote tallies. The viewer's own
// reaction is included for signed-in shoppers.
func ReviewList(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reviews, err := svc.ListForProduct(ctx, productID, viewerID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, reviews)
	}
}

// ReviewCreate posts a review on a product.
func ReviewCreate(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		review, err := svc.Create(ctx, viewerID(ctx), reviewsvc.CreateReviewInput{
			ProductID: productID,
			Rating:    payload.Rating,
			Title:     payload.Title,
			Content:   payload.Content,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewReact toggles an up or down vote on a review.
func ReviewReact(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reviewID, err := validators.ParsePathInt64(chi.URLParam(r, "reviewId"), "reviewId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload reviewReactionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.React(ctx, viewerID(ctx), reviewID, payload.Reaction); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}
