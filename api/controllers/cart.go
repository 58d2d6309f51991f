package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RedaKaafarani1/ecomwebsite/api/middleware"
	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/api/validators"
	cartsvc "github.com/RedaKaafarani1/ecomwebsite/internal/cart"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
)

type cartLinePayload struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type cartQuantityPayload struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartGet returns the full cart view with totals and any applied promo.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		view, err := svc.Get(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartAdd adds quantity to a line, creating it when absent.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		var payload cartLinePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Add(ctx, ownerID, payload.ProductID, payload.Quantity); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Get(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartUpdateQuantity sets a line to an absolute quantity.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload cartQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UpdateQuantity(ctx, ownerID, productID, payload.Quantity); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Get(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartRemove drops a line from the cart.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Remove(ctx, ownerID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Get(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		if err := svc.Clear(ctx, ownerID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CartCount returns the total item count for the badge in the navbar.
func CartCount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID, ok := requireCartOwner(ctx, logg, w)
		if !ok {
			return
		}

		count, err := svc.TotalItems(ctx, ownerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"total_items": count})
	}
}

func requireCartOwner(ctx context.Context, logg *logger.Logger, w http.ResponseWriter) (string, bool) {
	ownerID := middleware.CartOwnerFromContext(ctx)
	if ownerID == "" {
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart owner missing"))
		return "", false
	}
	return ownerID, true
}
