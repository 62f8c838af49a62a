package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/razat249/tabletop-reboxing/internal/catalog"
	"github.com/razat249/tabletop-reboxing/internal/domain"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	// ?category= narrows the listing, ?featured=true returns the home-page rail
	if r.URL.Query().Get("featured") == "true" {
		products, err := h.catalog.FeaturedProducts(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
			return
		}
		respondJSON(w, http.StatusOK, products)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		products, err := h.catalog.ProductsByCategory(r.Context(), category)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
			return
		}
		respondJSON(w, http.StatusOK, products)
		return
	}

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	product, err := h.catalog.Product(r.Context(), productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	suggestions, err := h.catalog.Suggest(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "search failed")
		return
	}
	if suggestions == nil {
		suggestions = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, suggestions)
}
