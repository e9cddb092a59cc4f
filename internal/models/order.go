package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const OrderStatusPlaced OrderStatus = "Placed"

// PaymentCashOnDelivery is the only payment method offered.
const PaymentCashOnDelivery = "Cash On Delivery"

// DeliveryTimeSlots lists the slots a customer may pick at checkout.
var DeliveryTimeSlots = []string{
	"9:00 AM - 12:00 PM",
	"12:00 PM - 3:00 PM",
	"3:00 PM - 6:00 PM",
	"6:00 PM - 9:00 PM",
}

// OrderedItem is a frozen copy of a cart line at checkout time.
type OrderedItem struct {
	ID          uint            `json:"-" gorm:"primaryKey"`
	OrderID     int             `json:"-" gorm:"index;not null"`
	ProductID   int             `json:"product_id" gorm:"not null"`
	ProductName string          `json:"product_name" gorm:"type:varchar(100)"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(14,2)"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:decimal(14,2)"`
}

// NewOrderedItem snapshots a line and computes its total.
func NewOrderedItem(productID int, name string, quantity int, unitPrice decimal.Decimal) OrderedItem {
	return OrderedItem{
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Order is a committed cart. Items and GrandTotal never change after creation.
type Order struct {
	ID               int             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CustomerID       int             `json:"customer_id" gorm:"index;not null"`
	CustomerName     string          `json:"customer_name" gorm:"type:varchar(100)"`
	Items            []OrderedItem   `json:"items" gorm:"foreignKey:OrderID"`
	GrandTotal       decimal.Decimal `json:"grand_total" gorm:"type:decimal(14,2)"`
	CreatedAt        time.Time       `json:"created_at"`
	DeliveryDate     time.Time       `json:"delivery_date"`
	DeliveryTimeSlot string          `json:"delivery_time_slot" gorm:"type:varchar(32)"`
	DeliveryAddress  string          `json:"delivery_address" gorm:"type:varchar(255)"`
	ContactNumber    string          `json:"contact_number" gorm:"type:varchar(32)"`
	PaymentMethod    string          `json:"payment_method" gorm:"type:varchar(32)"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(16)"`
}

// Clone returns a copy that shares no item storage with o.
func (o Order) Clone() Order {
	items := make([]OrderedItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
