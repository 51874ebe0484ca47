package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

// passthrough stands in for the session guard in handler tests.
func passthrough(next http.HandlerFunc) http.HandlerFunc { return next }

func newProductsServer(catalog *mockCatalogService) *http.ServeMux {
	mux := http.NewServeMux()
	NewProductsHandler(catalog, zap.NewNop()).RegisterRoutes(mux, passthrough)
	return mux
}

func TestProductsHandler_List(t *testing.T) {
	catalog := &mockCatalogService{
		ListFunc: func(ctx context.Context) ([]models.Product, error) {
			return []models.Product{
				{Reference: "P2AA11489", Name: "Panneau Bois Arifi"},
			}, nil
		},
	}
	mux := newProductsServer(catalog)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "P2AA11489", products[0].Reference)
}

func TestProductsHandler_SaveValidates(t *testing.T) {
	catalog := &mockCatalogService{
		SaveFunc: func(ctx context.Context, product models.Product) error {
			if product.Name == "" {
				return assert.AnError
			}
			return nil
		},
	}
	mux := newProductsServer(catalog)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/products",
		strings.NewReader(`{"reference":"REF1"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/products",
		strings.NewReader(`{"reference":"REF1","name":"Panneau"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductsHandler_Delete(t *testing.T) {
	var deleted string
	catalog := &mockCatalogService{
		DeleteFunc: func(ctx context.Context, reference string) error {
			deleted = reference
			return nil
		},
	}
	mux := newProductsServer(catalog)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/products/730510168", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "730510168", deleted)
}

func TestProductsHandler_DeleteMissingIs404(t *testing.T) {
	catalog := &mockCatalogService{
		DeleteFunc: func(ctx context.Context, reference string) error {
			return apperrors.ErrNotFound
		},
	}
	mux := newProductsServer(catalog)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/products/UNKNOWN", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
