package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/identity"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db  *gorm.DB
	ids *identity.Allocator
}

// NewGORMOrderRepository creates a GORMOrderRepository and moves the order id
// sequence past any order already stored.
func NewGORMOrderRepository(db *gorm.DB, ids *identity.Allocator) (*GORMOrderRepository, error) {
	var maxID int
	if err := db.Model(&models.Order{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return nil, fmt.Errorf("failed to read last order id: %w", err)
	}
	ids.Observe(identity.Order, maxID)

	return &GORMOrderRepository{
		db:  db,
		ids: ids,
	}, nil
}

// Append inserts the order together with its items in one transaction. The order
// id is only taken once the transaction commits.
func (r *GORMOrderRepository) Append(order *models.Order) error {
	err := r.ids.Allocate(identity.Order, func(id int) error {
		order.ID = id
		return r.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(order).Error
		})
	})
	if err != nil {
		order.ID = 0
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}
		return fmt.Errorf("failed to append order: %w", err)
	}
	return nil
}

// GetAll retrieves every order in ledger order.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.withItems().Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id int) (*models.Order, error) {
	var order models.Order
	if err := r.withItems().First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, models.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// ForCustomer retrieves the customer's orders in ledger order.
func (r *GORMOrderRepository) ForCustomer(customerID int) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.withItems().Where("customer_id = ?", customerID).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for customer %d: %w", customerID, err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) withItems() *gorm.DB {
	return r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}
