package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Append(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id int) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ForCustomer(customerID int) ([]models.Order, error) {
	args := m.Called(customerID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func TestOrderService_Queries(t *testing.T) {
	repo := new(MockOrderRepository)
	orderService := services.NewOrderService(repo)

	ledger := []models.Order{
		{ID: 1, CustomerID: 2, Status: models.OrderStatusPlaced},
		{ID: 2, CustomerID: 3, Status: models.OrderStatusPlaced},
		{ID: 3, CustomerID: 2, Status: models.OrderStatusPlaced},
	}
	repo.On("GetAll").Return(ledger, nil).Once()
	repo.On("ForCustomer", 2).Return([]models.Order{ledger[0], ledger[2]}, nil).Once()

	all, err := orderService.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := orderService.OrdersFor(2)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 1, mine[0].ID)
	assert.Equal(t, 3, mine[1].ID)

	repo.AssertExpectations(t)
}

func TestOrderService_GetForCustomer(t *testing.T) {
	repo := new(MockOrderRepository)
	orderService := services.NewOrderService(repo)

	order := &models.Order{ID: 5, CustomerID: 2}
	repo.On("GetByID", 5).Return(order, nil)
	repo.On("GetByID", 6).Return(nil, fmt.Errorf("order with ID 6: %w", models.ErrOrderNotFound))

	found, err := orderService.GetForCustomer(2, 5)
	require.NoError(t, err)
	assert.Equal(t, order, found)

	_, err = orderService.GetForCustomer(3, 5)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	_, err = orderService.GetForCustomer(2, 6)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	found, err = orderService.GetOrderByID(5)
	require.NoError(t, err)
	assert.Equal(t, 2, found.CustomerID)
}
