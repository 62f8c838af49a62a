package domain

import (
	"strings"
	"time"
)

// Customer holds the contact and shipping details collected by the checkout
// form. Phone is the only optional field.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Customer) ShippingAddress() string {
	return c.Address + ", " + c.City + ", " + c.State + " " + c.ZipCode
}

// OrderSnapshot is the cart state frozen when the buyer submits the checkout
// form. Totals are captured here and never recomputed, so later edits to the
// live cart or to the shipping rules cannot change what the buyer agreed to.
type OrderSnapshot struct {
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Shipping   float64    `json:"shipping"`
	GrandTotal float64    `json:"grand_total"`
	CapturedAt time.Time  `json:"captured_at"`
}

// Order is a placed order. It lives only for the current session, there is
// no backing order database.
type Order struct {
	OrderID    string     `json:"order_id"`
	Customer   Customer   `json:"customer"`
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Shipping   float64    `json:"shipping"`
	GrandTotal float64    `json:"grand_total"`
	PlacedAt   time.Time  `json:"placed_at"`
}
