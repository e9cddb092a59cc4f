package services

import (
	"fmt"
	"strings"

	"storefront/internal/config"
	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductUpdate carries the editable fields of a product. Id and category are
// fixed at creation.
type ProductUpdate struct {
	Name  string
	Price decimal.Decimal
	Stock int
	Spec1 string
	Spec2 string
}

// ProductService handles catalog administration.
type ProductService struct {
	inv          *Inventory
	deletePolicy string
	logger       *zap.Logger
}

// NewProductService creates a new ProductService. deletePolicy decides what happens
// to carts holding a product that is deleted.
func NewProductService(inv *Inventory, deletePolicy string, logger *zap.Logger) *ProductService {
	return &ProductService{
		inv:          inv,
		deletePolicy: deletePolicy,
		logger:       logger,
	}
}

// GetAllProducts retrieves all products in catalog order.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.inv.products.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	product, ok := s.inv.products.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, models.ErrProductNotFound)
	}
	return &product, nil
}

// CreateProduct validates and adds a product. Its id is assigned by the catalog.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Category == "" {
		product.Category = models.CategoryGeneric
	}
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.inv.products.Create(product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("product created",
		zap.Int("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("stock", product.Stock))
	return nil
}

// UpdateProduct replaces the editable fields of a product.
func (s *ProductService) UpdateProduct(id int, update ProductUpdate) (*models.Product, error) {
	var updated models.Product
	err := s.inv.products.Update(id, func(p *models.Product) error {
		p.Name = strings.TrimSpace(update.Name)
		p.Price = update.Price
		p.Stock = update.Stock
		p.Spec1 = update.Spec1
		p.Spec2 = update.Spec2
		if err := validateProduct(p); err != nil {
			return err
		}
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated",
		zap.Int("product_id", id),
		zap.String("price", updated.Price.StringFixed(2)),
		zap.Int("stock", updated.Stock))
	return &updated, nil
}

// DeleteProduct removes a product from the catalog. Under the forbid policy a
// product held in any cart is refused; under the cascade policy its lines are
// dropped from every cart and no stock is restored.
func (s *ProductService) DeleteProduct(id int) error {
	return s.inv.exclusive(func() error {
		if _, ok := s.inv.products.FindByID(id); !ok {
			return fmt.Errorf("product with ID %d not found for deletion: %w", id, models.ErrProductNotFound)
		}

		carts, err := s.inv.carts.GetAll()
		if err != nil {
			return fmt.Errorf("failed to list carts: %w", err)
		}
		var holders []*models.Cart
		for _, cart := range carts {
			if cart.IndexOf(id) >= 0 {
				holders = append(holders, cart)
			}
		}

		if len(holders) > 0 && s.deletePolicy != config.DeletePolicyCascade {
			return fmt.Errorf("product with ID %d is in %d cart(s): %w", id, len(holders), models.ErrProductReserved)
		}

		if err := s.inv.products.Delete(id); err != nil {
			return err
		}
		for _, cart := range holders {
			cart.RemoveAt(cart.IndexOf(id))
		}

		s.logger.Info("product deleted",
			zap.Int("product_id", id),
			zap.Int("carts_cleared", len(holders)))
		return nil
	})
}

func validateProduct(p *models.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("name is required: %w", models.ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("price must not be negative: %w", models.ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("stock must not be negative: %w", models.ErrInvalidProduct)
	case !p.Category.Valid():
		return fmt.Errorf("unknown category %q: %w", p.Category, models.ErrInvalidProduct)
	case p.Category != models.CategoryGeneric && (strings.TrimSpace(p.Spec1) == "" || strings.TrimSpace(p.Spec2) == ""):
		return fmt.Errorf("both spec fields are required for %s: %w", p.Category, models.ErrInvalidProduct)
	}
	return nil
}
