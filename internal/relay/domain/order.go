package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Item struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// Order is the payload the storefront sends. TotalPrice is taken as given.
type Order struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Region       string `json:"region"`
	Items        []Item `json:"items"`
	TotalPrice   int64  `json:"totalPrice"`
}

// FormatPrice groups digits by three with a space: 1500000 -> "1 500 000 сўм".
func FormatPrice(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	b.WriteString(" сўм")
	return b.String()
}

// FormatMessage renders the plain-text chat message for an order.
func FormatMessage(o Order) string {
	var b strings.Builder
	b.WriteString("🛒 ЯНГИ ЗАКАЗ\n\n")
	fmt.Fprintf(&b, "👤 Мижоз: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "📞 Телефон: %s\n", o.Phone)
	fmt.Fprintf(&b, "📍 Вилоят: %s\n\n", o.Region)
	b.WriteString("📦 Товарлар:\n")
	for i, it := range o.Items {
		fmt.Fprintf(&b, "%d. %s - %d та × %s\n", i+1, it.Name, it.Quantity, FormatPrice(it.Price))
	}
	fmt.Fprintf(&b, "\n💰 Жами: %s", FormatPrice(o.TotalPrice))
	return b.String()
}

const EventOrderNotified = "order.notified"

// Event is published after the chat accepted an order message.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Region     string    `json:"region"`
	ItemCount  int       `json:"item_count"`
	TotalPrice int64     `json:"total_price"`
}
