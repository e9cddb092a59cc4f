package repositories

import (
	"fmt"
	"sort"
	"sync"

	"storefront/internal/models"
)

// MemoryCartRepository keeps carts in process memory. Carts are returned by
// pointer; callers lock the cart itself before touching its lines.
type MemoryCartRepository struct {
	carts map[int]*models.Cart
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[int]*models.Cart),
	}
}

// Create makes the cart for customerID. Creating it twice returns the existing cart.
func (r *MemoryCartRepository) Create(customerID int) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[customerID]; ok {
		return cart, nil
	}
	cart := models.NewCart(customerID)
	r.carts[customerID] = cart
	return cart, nil
}

// GetByCustomer returns the live cart of customerID.
func (r *MemoryCartRepository) GetByCustomer(customerID int) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", customerID, models.ErrCartNotFound)
	}
	return cart, nil
}

// GetAll returns every live cart ordered by customer id.
func (r *MemoryCartRepository) GetAll() ([]*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	carts := make([]*models.Cart, 0, len(r.carts))
	for _, cart := range r.carts {
		carts = append(carts, cart)
	}
	sort.Slice(carts, func(i, j int) bool { return carts[i].CustomerID < carts[j].CustomerID })
	return carts, nil
}
