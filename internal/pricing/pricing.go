// Package pricing holds the shipping and total formulas. Everything here is
// pure so the cart sidebar, the floating summary bar and the checkout page
// all share one source of truth and can never disagree on a total.
package pricing

// Rules carries the storefront's shipping policy.
type Rules struct {
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold float64
	// FlatFee is charged below the threshold.
	FlatFee float64
}

// DefaultRules matches the storefront's published policy: free shipping at
// ₹1000, flat ₹120 below that.
func DefaultRules() Rules {
	return Rules{FreeShippingThreshold: 1000, FlatFee: 120}
}

func (r Rules) ShippingCharge(subtotal float64) float64 {
	if subtotal >= r.FreeShippingThreshold {
		return 0
	}
	return r.FlatFee
}

func (r Rules) GrandTotal(subtotal float64) float64 {
	return subtotal + r.ShippingCharge(subtotal)
}

// AmountToFreeShipping is how much more the buyer has to add to the cart
// before shipping is waived. Zero once the threshold is reached.
func (r Rules) AmountToFreeShipping(subtotal float64) float64 {
	if remaining := r.FreeShippingThreshold - subtotal; remaining > 0 {
		return remaining
	}
	return 0
}

// Quote is a priced view of a subtotal, ready for display.
type Quote struct {
	Subtotal             float64 `json:"subtotal"`
	Shipping             float64 `json:"shipping"`
	GrandTotal           float64 `json:"grand_total"`
	AmountToFreeShipping float64 `json:"amount_to_free_shipping"`
}

func (r Rules) Quote(subtotal float64) Quote {
	return Quote{
		Subtotal:             subtotal,
		Shipping:             r.ShippingCharge(subtotal),
		GrandTotal:           r.GrandTotal(subtotal),
		AmountToFreeShipping: r.AmountToFreeShipping(subtotal),
	}
}
