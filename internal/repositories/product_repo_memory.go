package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/identity"
	"storefront/internal/models"
)

// productRow guards one catalog row. The per-row lock is what serialises stock
// reservations for the same product coming from different carts.
type productRow struct {
	id      int
	mu      sync.Mutex
	product models.Product
	deleted bool
}

// MemoryProductRepository is an in-memory, insertion-ordered catalog.
type MemoryProductRepository struct {
	rows []*productRow
	ids  *identity.Allocator
	mu   sync.RWMutex
}

// NewMemoryProductRepository creates an empty catalog drawing ids from ids.
func NewMemoryProductRepository(ids *identity.Allocator) *MemoryProductRepository {
	return &MemoryProductRepository{
		ids: ids,
	}
}

// GetAll returns a snapshot of every product in catalog order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.rows))
	for _, row := range r.rows {
		row.mu.Lock()
		products = append(products, row.product)
		row.mu.Unlock()
	}
	return products, nil
}

// FindByID returns a snapshot of the product with the given id.
func (r *MemoryProductRepository) FindByID(id int) (models.Product, bool) {
	row := r.row(id)
	if row == nil {
		return models.Product{}, false
	}

	row.mu.Lock()
	defer row.mu.Unlock()
	if row.deleted {
		return models.Product{}, false
	}
	return row.product, true
}

// Create assigns the next product id and appends the product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.ids.Next(identity.Product)
	r.rows = append(r.rows, &productRow{id: product.ID, product: *product})
	return nil
}

// Update applies fn to a working copy of the row and stores it on success.
func (r *MemoryProductRepository) Update(id int, fn func(product *models.Product) error) error {
	row := r.row(id)
	if row == nil {
		return fmt.Errorf("product with ID %d: %w", id, models.ErrProductNotFound)
	}

	row.mu.Lock()
	defer row.mu.Unlock()
	if row.deleted {
		return fmt.Errorf("product with ID %d: %w", id, models.ErrProductNotFound)
	}

	working := row.product
	if err := fn(&working); err != nil {
		return err
	}
	working.ID = row.id
	row.product = working
	return nil
}

// Delete removes the product from the catalog.
func (r *MemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, row := range r.rows {
		if row.id != id {
			continue
		}
		row.mu.Lock()
		row.deleted = true
		row.mu.Unlock()
		r.rows = append(r.rows[:i], r.rows[i+1:]...)
		return nil
	}
	return fmt.Errorf("product with ID %d not found for deletion: %w", id, models.ErrProductNotFound)
}

func (r *MemoryProductRepository) row(id int) *productRow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.id == id {
			return row
		}
	}
	return nil
}
