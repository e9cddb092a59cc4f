package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles accounts, roles and session tokens.
type AuthService struct {
	userRepo   repositories.UserRepository
	carts      repositories.CartRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, carts repositories.CartRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		carts:      carts,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
		logger:     logger,
	}
}

// RegisterCustomer creates a customer account and its cart. An empty name
// defaults to the part of the email before '@'.
func (s *AuthService) RegisterCustomer(user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s': %w", user.Email, models.ErrEmailTaken)
	}

	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		user.Name, _, _ = strings.Cut(user.Email, "@")
	}
	user.Role = models.RoleCustomer

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	if _, err := s.carts.Create(user.ID); err != nil {
		return fmt.Errorf("failed to create cart for user %d: %w", user.ID, err)
	}

	s.logger.Info("customer registered", zap.Int("user_id", user.ID), zap.String("email", user.Email))
	return nil
}

// SeedAdmin makes sure the admin identity exists. It is safe to call on every start.
func (s *AuthService) SeedAdmin(name, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	existing, err := s.userRepo.GetByEmail(email)
	if err == nil && existing != nil {
		if existing.Role == models.RoleAdmin {
			return existing, nil
		}
		return nil, fmt.Errorf("cannot seed admin: email '%s': %w", email, models.ErrEmailTaken)
	}
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("cannot seed admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	s.logger.Info("admin seeded", zap.Int("user_id", admin.ID), zap.String("email", email))
	return admin, nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(models.NormalizeEmail(email))
	if err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	// Carts live in memory; a customer loaded from a durable store gets a fresh one.
	if user.Role == models.RoleCustomer {
		if _, err := s.carts.Create(user.ID); err != nil {
			return "", nil, fmt.Errorf("failed to open cart for user %d: %w", user.ID, err)
		}
	}

	tokenString, err := s.issueToken(user.ID, user.Name, user.Role)
	if err != nil {
		return "", nil, err
	}
	return tokenString, user, nil
}

// GuestToken issues a token for browsing without an account.
func (s *AuthService) GuestToken() (string, error) {
	return s.issueToken(0, "Guest", models.RoleGuest)
}

func (s *AuthService) issueToken(userID int, name string, role models.Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"role":    string(role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
