package models

import "strings"

// Role discriminates what a user may do.
type Role string

const (
	RoleGuest    Role = "Guest"
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
)

// User represents an account. Only customers own a cart.
type User struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name     string `json:"name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=4"`
	Role     Role   `json:"role" gorm:"type:varchar(16)"`
}

// NormalizeEmail is the form emails are stored and looked up in. Addresses that
// differ only in case belong to the same user.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
