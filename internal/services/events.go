package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoutingKeyOrderPlaced is the routing key of the event published after checkout.
const RoutingKeyOrderPlaced = "order.placed"

// MessagePublisher sends a message body under a routing key.
type MessagePublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderPlacedEvent announces a committed order to downstream consumers.
type OrderPlacedEvent struct {
	EventID          string          `json:"event_id"`
	OrderID          int             `json:"order_id"`
	CustomerID       int             `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	ItemCount        int             `json:"item_count"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	PaymentMethod    string          `json:"payment_method"`
	DeliveryDate     time.Time       `json:"delivery_date"`
	DeliveryTimeSlot string          `json:"delivery_time_slot"`
	PlacedAt         time.Time       `json:"placed_at"`
}
