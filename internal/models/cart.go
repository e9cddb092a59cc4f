package models

import "sync"

// CartItem is one line of a cart. It refers to the catalog row by id and never
// owns the product.
type CartItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Cart is a customer's in-progress selection, kept in insertion order with at most
// one line per product.
type Cart struct {
	CustomerID int        `json:"customer_id"`
	Items      []CartItem `json:"items"`

	mu sync.Mutex
}

// NewCart returns an empty cart owned by customerID.
func NewCart(customerID int) *Cart {
	return &Cart{CustomerID: customerID, Items: []CartItem{}}
}

// Lock acquires exclusive access to the cart lines.
func (c *Cart) Lock() { c.mu.Lock() }

// Unlock releases the cart.
func (c *Cart) Unlock() { c.mu.Unlock() }

// IndexOf returns the position of the line for productID, or -1.
func (c *Cart) IndexOf(productID int) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveAt drops the line at position i, keeping the order of the others.
func (c *Cart) RemoveAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []CartItem {
	lines := make([]CartItem, len(c.Items))
	copy(lines, c.Items)
	return lines
}

// Clear drops every line without touching stock. It is only correct once the
// reserved units have been committed to an order.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}
