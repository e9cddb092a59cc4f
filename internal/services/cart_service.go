package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService reserves and releases catalog stock as customers edit their carts.
// Stock on the product row is the only counter: adding to a cart takes units off
// the shelf immediately and removing puts them back.
type CartService struct {
	inv    *Inventory
	logger *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(inv *Inventory, logger *zap.Logger) *CartService {
	return &CartService{
		inv:    inv,
		logger: logger,
	}
}

// CartOutcome describes a successful cart mutation for display.
type CartOutcome struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
	// Quantity is what the cart now holds of the product; zero once removed.
	Quantity int `json:"quantity"`
}

// CartLine is a cart line priced at the live catalog price.
type CartLine struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView is a priced snapshot of a cart.
type CartView struct {
	CustomerID int             `json:"customer_id"`
	Items      []CartLine      `json:"items"`
	Total      decimal.Decimal `json:"total"`
}

// Open makes sure the customer has a cart, creating an empty one if needed.
func (s *CartService) Open(customerID int) error {
	return s.inv.openCart(&models.User{ID: customerID, Role: models.RoleCustomer})
}

// AddItem reserves quantity units of the product for the customer's cart,
// merging into an existing line for the same product.
func (s *CartService) AddItem(customerID, productID, quantity int) (*CartOutcome, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("add %d of product %d: %w", quantity, productID, models.ErrInvalidQuantity)
	}

	var outcome CartOutcome
	err := s.inv.withCart(customerID, func(cart *models.Cart) error {
		return s.inv.products.Update(productID, func(p *models.Product) error {
			if quantity > p.Stock {
				return &models.InsufficientStockError{ProductID: p.ID, Requested: quantity, Max: p.Stock}
			}

			if i := cart.IndexOf(p.ID); i >= 0 {
				cart.Items[i].Quantity += quantity
				outcome.Quantity = cart.Items[i].Quantity
				outcome.Message = fmt.Sprintf("Quantity updated for '%s' in the cart.", p.Name)
			} else {
				cart.Items = append(cart.Items, models.CartItem{ProductID: p.ID, Quantity: quantity})
				outcome.Quantity = quantity
				outcome.Message = fmt.Sprintf("'%s' added to cart.", p.Name)
			}
			p.Stock -= quantity
			outcome.Product = *p
			return nil
		})
	})
	if err != nil {
		s.logger.Debug("add to cart rejected",
			zap.Int("customer_id", customerID),
			zap.Int("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("reserved stock",
		zap.Int("customer_id", customerID),
		zap.Int("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("stock", outcome.Product.Stock))
	return &outcome, nil
}

// EditItem sets the cart line for the product to newQuantity, reserving or
// releasing the difference. A quantity of zero or less removes the line.
func (s *CartService) EditItem(customerID, productID, newQuantity int) (*CartOutcome, error) {
	var outcome CartOutcome
	err := s.inv.withCart(customerID, func(cart *models.Cart) error {
		i := cart.IndexOf(productID)
		if i < 0 {
			return fmt.Errorf("edit product %d: %w", productID, models.ErrItemNotFound)
		}

		return s.inv.products.Update(productID, func(p *models.Product) error {
			oldQuantity := cart.Items[i].Quantity
			available := p.Stock + oldQuantity
			if newQuantity > available {
				return &models.InsufficientStockError{ProductID: p.ID, Requested: newQuantity, Max: available}
			}

			if newQuantity > 0 {
				cart.Items[i].Quantity = newQuantity
				p.Stock += oldQuantity - newQuantity
				outcome.Quantity = newQuantity
				outcome.Message = fmt.Sprintf("Quantity of '%s' updated to %d.", p.Name, newQuantity)
			} else {
				p.Stock += oldQuantity
				cart.RemoveAt(i)
				outcome.Message = fmt.Sprintf("'%s' removed from cart due to zero/negative quantity. Stock restored.", p.Name)
			}
			outcome.Product = *p
			return nil
		})
	})
	if err != nil {
		s.logger.Debug("cart edit rejected",
			zap.Int("customer_id", customerID),
			zap.Int("product_id", productID),
			zap.Int("quantity", newQuantity),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("re-based cart line",
		zap.Int("customer_id", customerID),
		zap.Int("product_id", productID),
		zap.Int("quantity", outcome.Quantity),
		zap.Int("stock", outcome.Product.Stock))
	return &outcome, nil
}

// DeleteItem removes the product's line and returns its units to stock.
func (s *CartService) DeleteItem(customerID, productID int) (*CartOutcome, error) {
	var outcome CartOutcome
	err := s.inv.withCart(customerID, func(cart *models.Cart) error {
		i := cart.IndexOf(productID)
		if i < 0 {
			return fmt.Errorf("delete product %d: %w", productID, models.ErrItemNotFound)
		}

		err := s.inv.products.Update(productID, func(p *models.Product) error {
			p.Stock += cart.Items[i].Quantity
			cart.RemoveAt(i)
			outcome.Product = *p
			outcome.Message = fmt.Sprintf("'%s' removed from cart. Stock restored.", p.Name)
			return nil
		})
		if errors.Is(err, models.ErrProductNotFound) {
			// The row is gone, so there is no stock left to give back.
			cart.RemoveAt(i)
			outcome.Product = models.Product{ID: productID}
			outcome.Message = "Item removed from cart."
			return nil
		}
		return err
	})
	if err != nil {
		s.logger.Debug("cart delete rejected",
			zap.Int("customer_id", customerID),
			zap.Int("product_id", productID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("released stock",
		zap.Int("customer_id", customerID),
		zap.Int("product_id", productID),
		zap.Int("stock", outcome.Product.Stock))
	return &outcome, nil
}

// TotalPrice sums the customer's cart at current catalog prices.
func (s *CartService) TotalPrice(customerID int) (decimal.Decimal, error) {
	view, err := s.View(customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return view.Total, nil
}

// View returns the customer's cart priced at current catalog prices.
func (s *CartService) View(customerID int) (*CartView, error) {
	var view *CartView
	err := s.inv.withCart(customerID, func(cart *models.Cart) error {
		view = s.price(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// price must be called with the cart locked. Lines whose product has left the
// catalog are skipped.
func (s *CartService) price(cart *models.Cart) *CartView {
	view := &CartView{
		CustomerID: cart.CustomerID,
		Items:      make([]CartLine, 0, len(cart.Items)),
		Total:      decimal.Zero,
	}
	for _, item := range cart.Items {
		product, ok := s.inv.products.FindByID(item.ProductID)
		if !ok {
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view
}
