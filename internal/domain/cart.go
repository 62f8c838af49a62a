package domain

// CartItem is one line in the buyer's cart. Name, price and image are
// snapshots taken when the item was added, they are not re-fetched from the
// catalog afterwards.
type CartItem struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Customization string  `json:"customization,omitempty"`
}

// LineTotal is unit price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
