package domain

type CheckoutStatus string

const (
	CheckoutStatusFilling         CheckoutStatus = "FILLING"
	CheckoutStatusAwaitingPayment CheckoutStatus = "AWAITING_PAYMENT"
	CheckoutStatusPlaced          CheckoutStatus = "PLACED"
)

// checkoutTransitions lists the legal moves of the checkout flow. The only
// backward edge is the buyer cancelling out of the payment step.
var checkoutTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusFilling:         {CheckoutStatusAwaitingPayment},
	CheckoutStatusAwaitingPayment: {CheckoutStatusPlaced, CheckoutStatusFilling},
	CheckoutStatusPlaced:          {},
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusPlaced
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
