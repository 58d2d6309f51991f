package controllers

import (
	"net/http"

	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/api/validators"
	promosvc "github.com/RedaKaafarani1/ecomwebsite/internal/promo"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
)

type applyPromoPayload struct {
	Code string `json:"code" validate:"required"`
}

// PromoApply redeems a promo code against the cart.
func PromoApply(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		var payload applyPromoPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		applied, err := svc.Apply(ctx, ownerID, payload.Code)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, applied)
	}
}

// PromoRemove releases the active promo back to the pool.
func PromoRemove(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		if err := svc.Remove(ctx, ownerID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// PromoActive returns the promo currently applied to the cart, if any.
func PromoActive(svc promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		applied, err := svc.Active(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, applied)
	}
}
