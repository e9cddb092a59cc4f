package middleware

import (
	"strings"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Keys under which the authenticated identity is stored in fiber.Ctx locals.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalName   = "name"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		// jwt-go decodes numeric claims as float64.
		userID, _ := claims["user_id"].(float64)
		role, _ := claims["role"].(string)
		name, _ := claims["name"].(string)
		c.Locals(LocalUserID, int(userID))
		c.Locals(LocalRole, models.Role(role))
		c.Locals(LocalName, name)

		return c.Next()
	}
}

// RequireRole rejects requests whose token role is not one of roles. It must run
// after AuthRequired.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "This action is not available for role " + string(role),
		})
	}
}

// UserID returns the authenticated user id stored by AuthRequired.
func UserID(c *fiber.Ctx) int {
	id, _ := c.Locals(LocalUserID).(int)
	return id
}

// Role returns the authenticated role stored by AuthRequired.
func Role(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(LocalRole).(models.Role)
	return role
}
