package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	productsvc "github.com/RedaKaafarani1/ecomwebsite/internal/products"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/types"
)

type stubProductService struct {
	lastInput productsvc.ListInput
	page      productsvc.ProductPage
	product   *productsvc.ProductDTO
	err       error
}

func (s *stubProductService) List(_ context.Context, input productsvc.ListInput) (productsvc.ProductPage, error) {
	s.lastInput = input
	return s.page, s.err
}

func (s *stubProductService) Get(_ context.Context, _ int64) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestProductListPassesQueryParams(t *testing.T) {
	svc := &stubProductService{page: productsvc.ProductPage{Items: []productsvc.ProductDTO{}}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=mug&tag=kitchen&limit=10&cursor=abc", nil)
	rec := httptest.NewRecorder()

	ProductList(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastInput.Filters.Query != "mug" || svc.lastInput.Filters.Tag != "kitchen" {
		t.Fatalf("unexpected filters %+v", svc.lastInput.Filters)
	}
	if svc.lastInput.Pagination.Limit != 10 || svc.lastInput.Pagination.Cursor != "abc" {
		t.Fatalf("unexpected pagination %+v", svc.lastInput.Pagination)
	}
}

func TestProductListRejectsBadLimit(t *testing.T) {
	svc := &stubProductService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=0", nil)
	rec := httptest.NewRecorder()

	ProductList(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductGetMapsNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "42")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()

	ProductGet(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
}

func TestProductGetRejectsNonNumericID(t *testing.T) {
	svc := &stubProductService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()

	ProductGet(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
