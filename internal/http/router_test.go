package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/razat249/tabletop-reboxing/internal/cache"
	"github.com/razat249/tabletop-reboxing/internal/cart"
	"github.com/razat249/tabletop-reboxing/internal/checkout"
	"github.com/razat249/tabletop-reboxing/internal/pricing"
)

func newTestRouter() chi.Router {
	carts := cart.NewService(cache.NewMemoryPersistence())
	catalogSvc := testCatalog()
	manager := checkout.NewManager(carts, pricing.DefaultRules(), noopNotifier{})

	return NewRouter(
		NewCatalogHandler(catalogSvc),
		NewCartHandler(carts, catalogSvc, pricing.DefaultRules()),
		NewCheckoutHandler(manager, carts, "917014186406"),
		30*time.Second,
	)
}

func sessionCookieFrom(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range recorder.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	return nil
}

func TestSessionMiddleware_AssignsAndRoundTripsCookie(t *testing.T) {
	router := newTestRouter()

	// First request with no cookie gets assigned a session
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, httptest.NewRequest("GET", "/api/v1/cart", nil))

	if rec1.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, rec1.Code)
	}
	cookie := sessionCookieFrom(rec1)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("Expected a trb_session cookie on the first request")
	}

	// An add under that cookie lands in that session's cart
	body, _ := json.Marshal(&AddItemRequestDTO{ProductID: "meeple-set", Quantity: 2})
	req2 := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body))
	req2.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)

	if rec2.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, rec2.Code)
	}
	if replaced := sessionCookieFrom(rec2); replaced != nil {
		t.Errorf("Expected the presented cookie to be reused, got a new one: %s", replaced.Value)
	}

	// The same cookie sees the same cart back
	req3 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req3.AddCookie(cookie)
	rec3 := httptest.NewRecorder()
	router.ServeHTTP(rec3, req3)

	var sameCart CartResponseDTO
	if err := json.NewDecoder(rec3.Body).Decode(&sameCart); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(sameCart.Items) != 1 || sameCart.ItemCount != 2 {
		t.Errorf("Expected the cookie's cart (1 line, count 2), got %d lines (count %d)",
			len(sameCart.Items), sameCart.ItemCount)
	}

	// A cookie-less request is a different buyer with an empty cart
	rec4 := httptest.NewRecorder()
	router.ServeHTTP(rec4, httptest.NewRequest("GET", "/api/v1/cart", nil))

	var freshCart CartResponseDTO
	if err := json.NewDecoder(rec4.Body).Decode(&freshCart); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(freshCart.Items) != 0 {
		t.Errorf("Expected an empty cart for a fresh session, got %d items", len(freshCart.Items))
	}
	fresh := sessionCookieFrom(rec4)
	if fresh == nil || fresh.Value == cookie.Value {
		t.Error("Expected a distinct session cookie for a cookie-less request")
	}
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
}
