package models

import (
	"errors"
	"fmt"
)

// Recoverable failures reported by the cart, checkout and catalog operations.
var (
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrItemNotFound        = errors.New("product not found in cart")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingDeliveryInfo = errors.New("missing delivery information")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductReserved     = errors.New("product is held in a cart")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrCartNotFound        = errors.New("cart not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// InsufficientStockError carries the largest quantity that would have succeeded.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Max       int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, max %d", e.ProductID, e.Requested, e.Max)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
