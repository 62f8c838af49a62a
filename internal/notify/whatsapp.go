package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link carrying the order summary. The link
// is handed back to the buyer's client to open; the server never calls it.
func WhatsAppLink(number string, p Payload) string {
	lines := []string{
		"Hi! I just placed an order.",
		"",
		fmt.Sprintf("*Order ID:* %s", p.OrderID),
		fmt.Sprintf("*Name:* %s", p.CustomerName),
		"",
		"*Items:*",
		p.ItemsText,
		"",
		fmt.Sprintf("*Total:* %s", p.OrderTotal),
		"",
		"Payment sent via UPI. Please confirm!",
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(strings.Join(lines, "\n")))
}
