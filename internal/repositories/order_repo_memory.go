package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/identity"
	"storefront/internal/models"
)

// MemoryOrderRepository is an in-memory ledger. Stored orders are copies, so
// nothing a caller does to a returned order reaches the ledger.
type MemoryOrderRepository struct {
	orders []models.Order
	ids    *identity.Allocator
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository(ids *identity.Allocator) *MemoryOrderRepository {
	return &MemoryOrderRepository{
		ids: ids,
	}
}

// Append adds an order to the end of the ledger.
func (r *MemoryOrderRepository) Append(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.ids.Next(identity.Order)
	r.orders = append(r.orders, order.Clone())
	return nil
}

// GetAll returns all orders in ledger order.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	return r.filter(func(models.Order) bool { return true }), nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id int) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.ID == id {
			found := order.Clone()
			return &found, nil
		}
	}
	return nil, fmt.Errorf("order with ID %d: %w", id, models.ErrOrderNotFound)
}

// ForCustomer filters the ledger by customer id.
func (r *MemoryOrderRepository) ForCustomer(customerID int) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *MemoryOrderRepository) filter(keep func(models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, order := range r.orders {
		if keep(order) {
			orders = append(orders, order.Clone())
		}
	}
	return orders
}
