package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderService answers queries against the order ledger.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetAllOrders retrieves every order on the ledger.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// OrdersFor retrieves the customer's orders, oldest first.
func (s *OrderService) OrdersFor(customerID int) ([]models.Order, error) {
	return s.orderRepo.ForCustomer(customerID)
}

// GetForCustomer retrieves one of the customer's orders. Orders placed by other
// customers read as not found.
func (s *OrderService) GetForCustomer(customerID, orderID int) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, fmt.Errorf("order with ID %d: %w", orderID, models.ErrOrderNotFound)
	}
	return order, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id int) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}
