package services

import (
	"fmt"
	"sync"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Inventory couples the catalog with the carts that reserve stock from it. It is
// built once at startup and shared by the cart, checkout and product services.
//
// Locks are always taken in the order gate, cart, product row. Cart operations and
// checkout hold the gate shared; product deletion holds it exclusively so it can
// inspect and rewrite every cart.
type Inventory struct {
	products repositories.ProductRepository
	carts    repositories.CartRepository
	gate     sync.RWMutex
}

// NewInventory creates an Inventory over the given catalog and carts.
func NewInventory(products repositories.ProductRepository, carts repositories.CartRepository) *Inventory {
	return &Inventory{
		products: products,
		carts:    carts,
	}
}

// withCart runs fn with the customer's cart locked.
func (inv *Inventory) withCart(customerID int, fn func(cart *models.Cart) error) error {
	inv.gate.RLock()
	defer inv.gate.RUnlock()

	cart, err := inv.carts.GetByCustomer(customerID)
	if err != nil {
		return err
	}
	cart.Lock()
	defer cart.Unlock()
	return fn(cart)
}

// openCart makes sure a customer has a cart. Carts are process-resident, so a
// customer known to a durable directory may arrive without one.
func (inv *Inventory) openCart(user *models.User) error {
	if user.Role != models.RoleCustomer {
		return nil
	}
	if _, err := inv.carts.Create(user.ID); err != nil {
		return fmt.Errorf("failed to open cart for user %d: %w", user.ID, err)
	}
	return nil
}

// exclusive runs fn while no cart operation is in progress.
func (inv *Inventory) exclusive(fn func() error) error {
	inv.gate.Lock()
	defer inv.gate.Unlock()
	return fn()
}
