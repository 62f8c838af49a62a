package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/razat249/tabletop-reboxing/internal/cart"
	"github.com/razat249/tabletop-reboxing/internal/checkout"
	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/razat249/tabletop-reboxing/internal/notify"
)

type CheckoutHandler struct {
	checkouts      *checkout.Manager
	carts          *cart.Service
	whatsAppNumber string
}

func NewCheckoutHandler(checkouts *checkout.Manager, carts *cart.Service, whatsAppNumber string) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts:      checkouts,
		carts:          carts,
		whatsAppNumber: whatsAppNumber,
	}
}

type SubmitRequestDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// CheckoutStateDTO carries the live cart's item count alongside the status so
// the filling page can bounce an empty-cart buyer without a second fetch.
type CheckoutStateDTO struct {
	Status        string                `json:"status"`
	CartItemCount int                   `json:"cart_item_count"`
	Snapshot      *domain.OrderSnapshot `json:"snapshot,omitempty"`
	Order         *domain.Order         `json:"order,omitempty"`
}

type OrderPlacedDTO struct {
	Order        *domain.Order `json:"order"`
	WhatsAppLink string        `json:"whatsapp_link,omitempty"`
}

func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	s := h.checkouts.Session(sessionID)
	respondJSON(w, http.StatusOK, CheckoutStateDTO{
		Status:        s.Status().String(),
		CartItemCount: h.carts.Cart(r.Context(), sessionID).ItemCount(),
		Snapshot:      s.Snapshot(),
		Order:         s.Order(),
	})
}

// Submit takes the contact form, freezes the cart snapshot and moves the
// session to the payment step.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s := h.checkouts.Session(sessionID)
	err := s.Submit(r.Context(), domain.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
	})

	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, "missing_fields",
			"required fields missing: "+strings.Join(vErr.Missing, ", "))
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cannot check out an empty cart")
		return
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", "checkout is not accepting a form right now")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
		return
	}

	respondJSON(w, http.StatusOK, CheckoutStateDTO{
		Status:        s.Status().String(),
		CartItemCount: h.carts.Cart(r.Context(), sessionID).ItemCount(),
		Snapshot:      s.Snapshot(),
	})
}

// ConfirmPayment is called after the buyer reports the UPI payment as sent.
// The response carries the placed order and a wa.me link the client opens so
// the buyer can ping the shop directly.
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	s := h.checkouts.Session(sessionID)
	order, err := s.ConfirmPayment(r.Context())
	switch {
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", "no payment is awaiting confirmation")
		return
	case errors.Is(err, checkout.ErrConfirmFailed):
		respondError(w, http.StatusInternalServerError, "confirm_failed", "could not place the order, please retry")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "could not place the order")
		return
	}

	resp := OrderPlacedDTO{Order: order}
	if h.whatsAppNumber != "" {
		resp.WhatsAppLink = notify.WhatsAppLink(h.whatsAppNumber, notify.BuildPayload(order))
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Cancel backs out of the payment step and returns the session to Filling.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	s := h.checkouts.Session(sessionID)
	if err := s.Cancel(); err != nil {
		respondError(w, http.StatusConflict, "illegal_transition", "nothing to cancel")
		return
	}

	respondJSON(w, http.StatusOK, CheckoutStateDTO{
		Status:        s.Status().String(),
		CartItemCount: h.carts.Cart(r.Context(), sessionID).ItemCount(),
	})
}
