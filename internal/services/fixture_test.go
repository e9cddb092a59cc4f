package services_test

import (
	"testing"

	"storefront/internal/config"
	"storefront/internal/identity"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fixture wires the in-memory stores and services the way main does.
type fixture struct {
	products *repositories.MemoryProductRepository
	carts    *repositories.MemoryCartRepository
	orders   *repositories.MemoryOrderRepository
	users    *repositories.MemoryUserRepository
	inv      *services.Inventory
	catalog  *services.ProductService
	cart     *services.CartService
	checkout *services.CheckoutService
}

func newFixture(t *testing.T, deletePolicy string) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	ids := identity.NewAllocator()

	f := &fixture{
		products: repositories.NewMemoryProductRepository(ids),
		carts:    repositories.NewMemoryCartRepository(),
		orders:   repositories.NewMemoryOrderRepository(ids),
		users:    repositories.NewMemoryUserRepository(ids),
	}
	inv := services.NewInventory(f.products, f.carts)
	f.inv = inv
	f.catalog = services.NewProductService(inv, deletePolicy, logger)
	f.cart = services.NewCartService(inv, logger)
	f.checkout = services.NewCheckoutService(inv, f.orders, f.users, nil, logger)
	return f
}

func newForbidFixture(t *testing.T) *fixture {
	return newFixture(t, config.DeletePolicyForbid)
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Category: models.CategoryGeneric,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
	require.NoError(t, f.catalog.CreateProduct(&product))
	return product
}

func (f *fixture) addCustomer(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, f.users.Create(user))
	_, err := f.carts.Create(user.ID)
	require.NoError(t, err)
	return user
}

func (f *fixture) stock(t *testing.T, productID int) int {
	t.Helper()
	product, ok := f.products.FindByID(productID)
	require.True(t, ok, "product %d should exist", productID)
	return product.Stock
}

func (f *fixture) lines(t *testing.T, customerID int) []models.CartItem {
	t.Helper()
	cart, err := f.carts.GetByCustomer(customerID)
	require.NoError(t, err)
	cart.Lock()
	defer cart.Unlock()
	return cart.Lines()
}

// updateOf keeps p's name and specs while changing its price and stock.
func updateOf(p models.Product, price string, stock int) services.ProductUpdate {
	return services.ProductUpdate{
		Name:  p.Name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
		Spec1: p.Spec1,
		Spec2: p.Spec2,
	}
}
