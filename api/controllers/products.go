package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/api/validators"
	productsvc "github.com/RedaKaafarani1/ecomwebsite/internal/products"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/pagination"
)

// ProductList serves the browse endpoint with search, tag filtering, and
// cursor pagination.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := productsvc.ListInput{
			Filters: productsvc.ListFilters{
				Query: r.URL.Query().Get("q"),
				Tag:   r.URL.Query().Get("tag"),
			},
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		page, err := svc.List(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ProductGet serves a single listing by its numeric id.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
