package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the backend's order status, kept verbatim.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// OrderEvent identifies the event an order belongs to.
type OrderEvent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderSession is the event session the tickets are valid for.
type OrderSession struct {
	StartsAt time.Time  `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

// OrderVenue is the physical venue; online events have none.
type OrderVenue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// OrderTicket is one paid line item.
type OrderTicket struct {
	Code      string  `json:"code"`
	SeatLabel *string `json:"seatLabel"`
	ZoneName  *string `json:"zoneName"`
}

// Zone returns the zone name or "General" when the ticket has no zone.
func (t OrderTicket) Zone() string {
	if t.ZoneName == nil || *t.ZoneName == "" {
		return "General"
	}
	return *t.ZoneName
}

// OrderSummary is a read-only projection of a backend order.
type OrderSummary struct {
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	Status      OrderStatus     `json:"status"`
	Event       OrderEvent      `json:"event"`
	Session     OrderSession    `json:"session"`
	Venue       *OrderVenue     `json:"venue"`
	Tickets     []OrderTicket   `json:"tickets"`
}

// FormattedTotal renders the total as "$1,500 MXN".
func (o OrderSummary) FormattedTotal() string {
	return "$" + groupThousands(o.Total.String()) + " " + o.Currency
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
