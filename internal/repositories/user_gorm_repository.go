package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/identity"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db  *gorm.DB
	ids *identity.Allocator
}

// NewGORMUserRepository creates a GORMUserRepository and moves the user id
// sequence past any user already stored.
func NewGORMUserRepository(db *gorm.DB, ids *identity.Allocator) (*GORMUserRepository, error) {
	var maxID int
	if err := db.Model(&models.User{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return nil, fmt.Errorf("failed to read last user id: %w", err)
	}
	ids.Observe(identity.User, maxID)

	return &GORMUserRepository{
		db:  db,
		ids: ids,
	}, nil
}

// Create creates a new user in the database. The user id is only taken once the
// row is committed.
func (r *GORMUserRepository) Create(user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	err := r.ids.Allocate(identity.User, func(id int) error {
		user.ID = id
		return r.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(user).Error
		})
	})
	if err != nil {
		user.ID = 0
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create user: %w", models.ErrEmailTaken)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}
