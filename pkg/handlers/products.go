package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/services"
)

// ProductsHandler handles catalog HTTP requests.
type ProductsHandler struct {
	catalog services.CatalogService
	logger  *zap.Logger
}

// NewProductsHandler creates a new catalog handler.
func NewProductsHandler(catalog services.CatalogService, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the catalog routes on the given mux behind the
// session guard.
func (h *ProductsHandler) RegisterRoutes(mux *http.ServeMux, requireSession Middleware) {
	mux.HandleFunc("GET /api/products", requireSession(h.List))
	mux.HandleFunc("PUT /api/products", requireSession(h.Save))
	mux.HandleFunc("DELETE /api/products/{reference}", requireSession(h.Delete))
}

// List handles GET /api/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		h.writeError(w, notFoundOrInternal(w, err, "catalog"))
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

// Save handles PUT /api/products. Upsert by reference: editing and creating
// are the same operation at the persistence boundary.
func (h *ProductsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid product payload"))
		return
	}

	if err := h.catalog.Save(r.Context(), product); err != nil {
		h.logger.Error("failed to save product", zap.String("reference", product.Reference), zap.Error(err))
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_product", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{reference}.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")
	if err := h.catalog.Delete(r.Context(), reference); err != nil {
		h.logger.Error("failed to delete product", zap.String("reference", reference), zap.Error(err))
		h.writeError(w, notFoundOrInternal(w, err, "product"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductsHandler) writeError(w http.ResponseWriter, err error) {
	if err != nil {
		h.logger.Error("failed to write error response", zap.Error(err))
	}
}

func (h *ProductsHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := WriteJSON(w, status, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
