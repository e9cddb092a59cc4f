package repositories

import "storefront/internal/models"

// CartRepository owns the one cart each customer has for its lifetime.
type CartRepository interface {
	Create(customerID int) (*models.Cart, error)
	GetByCustomer(customerID int) (*models.Cart, error)
	GetAll() ([]*models.Cart, error)
}
