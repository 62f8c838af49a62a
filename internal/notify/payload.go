package notify

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/razat249/tabletop-reboxing/internal/domain"
)

// ist is the storefront's display timezone for order dates.
var ist = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// Payload is the JSON-shaped order notification handed to a transport. All
// money fields are pre-formatted for display so every channel (email
// template, chat message, log line) shows identical amounts.
type Payload struct {
	OrderID         string        `json:"order_id"`
	OrderDate       string        `json:"order_date"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	ShippingAddress string        `json:"shipping_address"`
	Items           []PayloadItem `json:"items"`
	ItemsText       string        `json:"items_text"`
	Shipping        string        `json:"shipping"`
	OrderTotal      string        `json:"order_total"`
}

type PayloadItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// BuildPayload flattens a placed order into the notification payload.
func BuildPayload(order *domain.Order) Payload {
	items := make([]PayloadItem, 0, len(order.Items))
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, PayloadItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: FormatINR(item.Price),
			LineTotal: FormatINR(item.LineTotal()),
		})
		lines = append(lines, fmt.Sprintf("%s x%d — %s each = %s",
			item.Name, item.Quantity, FormatINR(item.Price), FormatINR(item.LineTotal())))
	}

	phone := order.Customer.Phone
	if phone == "" {
		phone = "Not provided"
	}

	shipping := FormatINR(order.Shipping)
	if order.Shipping == 0 {
		shipping = "Free"
	}

	return Payload{
		OrderID:         order.OrderID,
		OrderDate:       order.PlacedAt.In(ist).Format("Monday, 2 January 2006 at 3:04 PM"),
		CustomerName:    order.Customer.FullName(),
		CustomerEmail:   order.Customer.Email,
		CustomerPhone:   phone,
		ShippingAddress: order.Customer.ShippingAddress(),
		Items:           items,
		ItemsText:       strings.Join(lines, "\n"),
		Shipping:        shipping,
		OrderTotal:      FormatINR(order.GrandTotal),
	}
}

// FormatINR renders an amount with the rupee sign and Indian digit grouping
// (last three digits, then pairs: ₹1,23,456). Paise appear only when present.
func FormatINR(amount float64) string {
	paise := int64(math.Round(amount * 100))
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}

	out := sign + "₹" + groupIndian(paise/100)
	if frac := paise % 100; frac != 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	return out
}

func groupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
