package controllers

import (
	"net/http"

	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/api/validators"
	ordersvc "github.com/RedaKaafarani1/ecomwebsite/internal/orders"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/validation"
)

type checkoutPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
}

// CheckoutSubmit places the order: emails the summary and clears the cart.
func CheckoutSubmit(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Submit(ctx, ownerID, validation.CustomerInfo{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Address:   payload.Address,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderHistory lists the owner's past orders, newest first.
func OrderHistory(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orders, err := svc.History(ctx, ownerID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}
