package repositories

import (
	"storefront/internal/models"
)

// ProductRepository is the catalog: the authoritative list of products and their
// live stock counts.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	// FindByID reports false when no product has the id; absence is not an error.
	FindByID(id int) (models.Product, bool)
	Create(product *models.Product) error
	// Update runs fn with exclusive access to the live row. The row changes only
	// if fn returns nil, and its id never changes.
	Update(id int, fn func(product *models.Product) error) error
	Delete(id int) error
}
