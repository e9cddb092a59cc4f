package services_test

import (
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(customerID int) (*models.Cart, error) {
	args := m.Called(customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) GetByCustomer(customerID int) (*models.Cart, error) {
	args := m.Called(customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) GetAll() ([]*models.Cart, error) {
	args := m.Called()
	return args.Get(0).([]*models.Cart), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(t *testing.T, users *MockUserRepository, carts *MockCartRepository) *services.AuthService {
	return services.NewAuthService(users, carts, testJWTSecret, time.Hour, zaptest.NewLogger(t))
}

func TestAuthService_RegisterCustomer(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	authService := newAuthService(t, users, carts)

	user := &models.User{Email: " Jane@Example.com ", Password: "password123"}

	users.On("GetByEmail", "jane@example.com").Return(nil, models.ErrUserNotFound).Once()
	users.On("Create", mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { args.Get(0).(*models.User).ID = 7 }).
		Return(nil).Once()
	carts.On("Create", 7).Return(models.NewCart(7), nil).Once()

	err := authService.RegisterCustomer(user)
	require.NoError(t, err)
	users.AssertExpectations(t)
	carts.AssertExpectations(t)

	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "jane", user.Name)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	// Test email already registered
	users.On("GetByEmail", "jane@example.com").Return(&models.User{ID: 7}, nil).Once()
	err = authService.RegisterCustomer(&models.User{Email: "jane@example.com", Password: "x"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
	assert.Contains(t, err.Error(), "email 'jane@example.com'")
	users.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	authService := newAuthService(t, users, carts)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       3,
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}

	// Test successful login
	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	carts.On("Create", 3).Return(models.NewCart(3), nil).Once()

	token, loggedIn, err := authService.LoginUser(user.Email, "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user, loggedIn)
	users.AssertExpectations(t)
	carts.AssertExpectations(t)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, float64(3), claims["user_id"])
	assert.Equal(t, "Jane", claims["name"])
	assert.Equal(t, string(models.RoleCustomer), claims["role"])

	// Test wrong password
	users.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Test unknown user
	users.On("GetByEmail", "nobody@example.com").Return(nil, models.ErrUserNotFound).Once()
	_, _, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	users.AssertExpectations(t)
}

func TestAuthService_LoginAdminHasNoCart(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	authService := newAuthService(t, users, carts)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	admin := &models.User{ID: 1, Name: "Site Admin", Email: "admin@admin.com", Password: string(hashedPassword), Role: models.RoleAdmin}
	users.On("GetByEmail", admin.Email).Return(admin, nil).Once()

	_, _, err := authService.LoginUser(admin.Email, "1234")
	require.NoError(t, err)
	carts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_SeedAdmin(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	authService := newAuthService(t, users, carts)

	users.On("GetByEmail", "admin@admin.com").Return(nil, models.ErrUserNotFound).Once()
	users.On("Create", mock.MatchedBy(func(u *models.User) bool { return u.Role == models.RoleAdmin })).
		Run(func(args mock.Arguments) { args.Get(0).(*models.User).ID = 1 }).
		Return(nil).Once()

	admin, err := authService.SeedAdmin("Site Admin", "admin@admin.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, 1, admin.ID)

	// Seeding again finds the existing admin.
	users.On("GetByEmail", "admin@admin.com").Return(admin, nil).Once()
	again, err := authService.SeedAdmin("Site Admin", "admin@admin.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, admin, again)

	// A customer already owning the address blocks the seed.
	users.On("GetByEmail", "taken@example.com").Return(&models.User{ID: 9, Role: models.RoleCustomer}, nil).Once()
	_, err = authService.SeedAdmin("Site Admin", "taken@example.com", "1234")
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	users.AssertExpectations(t)
	carts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_TokenValidation(t *testing.T) {
	authService := newAuthService(t, new(MockUserRepository), new(MockCartRepository))

	token, err := authService.GuestToken()
	require.NoError(t, err)
	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleGuest), claims["role"])
	assert.Equal(t, float64(0), claims["user_id"])

	_, err = authService.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := services.NewAuthService(new(MockUserRepository), new(MockCartRepository), "another_secret", time.Hour, zaptest.NewLogger(t))
	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	expired := services.NewAuthService(new(MockUserRepository), new(MockCartRepository), testJWTSecret, -time.Minute, zaptest.NewLogger(t))
	stale, err := expired.GuestToken()
	require.NoError(t, err)
	_, err = authService.ValidateToken(stale)
	assert.Error(t, err)
}
