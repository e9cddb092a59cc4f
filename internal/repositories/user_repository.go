package repositories

import "storefront/internal/models"

// UserRepository is the user directory.
type UserRepository interface {
	// Create assigns the next user id and stores the user.
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}
