package repositories

import (
	"storefront/internal/models"
)

// OrderRepository is the append-only order ledger.
type OrderRepository interface {
	// Append assigns the next order id and stores the order.
	Append(order *models.Order) error
	GetAll() ([]models.Order, error)
	GetByID(id int) (*models.Order, error)
	// ForCustomer returns the customer's orders in ledger order.
	ForCustomer(customerID int) ([]models.Order, error)
}
