package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yaxyebile/admin/internal/app/dto"
	"github.com/yaxyebile/admin/internal/app/store"
	"github.com/yaxyebile/admin/internal/domain"
	"github.com/yaxyebile/admin/internal/infrastructure/http/response"
)

// CatalogHandler handles HTTP requests for products and categories
type CatalogHandler struct {
	store  *store.CatalogStore
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store *store.CatalogStore, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{store: store, logger: logger}
}

// ListProducts handles GET /products with optional ?q= search and
// ?featured=true filtering
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var products []domain.Product
	if r.URL.Query().Get("featured") == "true" {
		products = h.store.FeaturedProducts()
	} else {
		products = h.store.SearchProducts(r.URL.Query().Get("q"))
	}
	if products == nil {
		products = []domain.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// ProductsByCategory handles GET /products/category/{slug} with optional
// ?subcategory= restriction
func (h *CatalogHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	subcategory := r.URL.Query().Get("subcategory")

	products := h.store.ProductsByCategory(slug, subcategory)
	if products == nil {
		products = []domain.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.store.AddProduct(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, created)
}

// UpdateProduct handles PUT /products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.store.UpdateProduct(r.Context(), id, req.ToPatch())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /categories with optional ?q= search
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.store.SearchCategories(r.URL.Query().Get("q"))
	if categories == nil {
		categories = []domain.Category{}
	}
	response.JSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.store.AddCategory(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, created)
}

// UpdateCategory handles PUT /categories/{id}
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.store.UpdateCategory(r.Context(), id, req.ToPatch())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, updated)
}

// DeleteCategory handles DELETE /categories/{id}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
