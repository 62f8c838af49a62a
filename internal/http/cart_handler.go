package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/razat249/tabletop-reboxing/internal/cart"
	"github.com/razat249/tabletop-reboxing/internal/catalog"
	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/razat249/tabletop-reboxing/internal/pricing"
)

type CartHandler struct {
	carts   *cart.Service
	catalog *catalog.Service
	rules   pricing.Rules
}

func NewCartHandler(carts *cart.Service, catalogSvc *catalog.Service, rules pricing.Rules) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalogSvc,
		rules:   rules,
	}
}

type AddItemRequestDTO struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// CartResponseDTO is the cart plus its priced summary, so the sidebar and the
// floating bar render from one response.
type CartResponseDTO struct {
	Items                []domain.CartItem `json:"items"`
	ItemCount            int               `json:"item_count"`
	Subtotal             float64           `json:"subtotal"`
	Shipping             float64           `json:"shipping"`
	GrandTotal           float64           `json:"grand_total"`
	AmountToFreeShipping float64           `json:"amount_to_free_shipping"`
}

func (h *CartHandler) cartResponse(items []domain.CartItem) CartResponseDTO {
	var subtotal float64
	var count int
	for _, item := range items {
		subtotal += item.LineTotal()
		count += item.Quantity
	}
	quote := h.rules.Quote(subtotal)

	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponseDTO{
		Items:                items,
		ItemCount:            count,
		Subtotal:             quote.Subtotal,
		Shipping:             quote.Shipping,
		GrandTotal:           quote.GrandTotal,
		AmountToFreeShipping: quote.AmountToFreeShipping,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	items := h.carts.Cart(r.Context(), sessionID).Items()
	respondJSON(w, http.StatusOK, h.cartResponse(items))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	// Parse request body
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Validate request
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// The cart line snapshots name, price and image at add time, so the line
	// is built from the catalog here and never re-fetched.
	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}
	if product.OutOfStock {
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	}

	items := h.carts.AddItem(r.Context(), sessionID, domain.CartItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		Image:         product.Image,
		Customization: req.Customization,
	}, req.Quantity)

	respondJSON(w, http.StatusCreated, h.cartResponse(items))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	// Parse request body
	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	// Zero or negative removes the line
	items := h.carts.SetQuantity(r.Context(), sessionID, productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse(items))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	items := h.carts.RemoveItem(r.Context(), sessionID, productID)
	respondJSON(w, http.StatusOK, h.cartResponse(items))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	h.carts.Clear(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, h.cartResponse(nil))
}
