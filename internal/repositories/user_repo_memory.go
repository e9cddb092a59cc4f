package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/identity"
	"storefront/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users []models.User
	ids   *identity.Allocator
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository(ids *identity.Allocator) *MemoryUserRepository {
	return &MemoryUserRepository{
		ids: ids,
	}
}

// Create adds a new user. Emails are unique, ignoring case.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = models.NormalizeEmail(user.Email)
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("failed to create user: %w", models.ErrEmailTaken)
		}
	}
	user.ID = r.ids.Next(identity.User)
	r.users = append(r.users, *user)
	return nil
}

// GetByEmail returns a user by email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = models.NormalizeEmail(email)
	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, models.ErrUserNotFound)
}

// GetByID returns a user by id.
func (r *MemoryUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user with ID %d: %w", id, models.ErrUserNotFound)
}
