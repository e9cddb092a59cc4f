package models

import "github.com/shopspring/decimal"

// Category tags a product with the meaning of its two spec fields.
type Category string

const (
	CategoryGeneric     Category = "Generic"
	CategoryGroceries   Category = "Groceries"
	CategoryClothes     Category = "Clothes"
	CategoryElectronics Category = "Electronics"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneric, CategoryGroceries, CategoryClothes, CategoryElectronics:
		return true
	}
	return false
}

// Product represents a purchasable catalog row. Stock is the on-hand count; units
// sitting in carts have already been taken off it.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name" validate:"required,min=1,max=100"`
	Category Category        `json:"category" validate:"required,oneof=Generic Groceries Clothes Electronics"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Stock    int             `json:"stock" validate:"gte=0"`
	Spec1    string          `json:"spec1,omitempty" validate:"omitempty,max=100"`
	Spec2    string          `json:"spec2,omitempty" validate:"omitempty,max=100"`
}
