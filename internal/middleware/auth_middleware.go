package middleware

import (
	"errors"
	"strings"

	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/service"
	"go-sales-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by RequireAuth.
const (
	LocalUser      = "user"
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
	LocalUserName  = "user_name"
	LocalUserRole  = "user_role"
)

// TokenValidator resolves a bearer token to the current user.
type TokenValidator interface {
	ValidateToken(tokenString string) (*model.User, error)
}

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		user, err := auth.ValidateToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionRevoked):
				return c.Status(401).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, service.ErrUserNotFound):
				return c.Status(401).JSON(fiber.Map{"error": "User not found"})
			case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingToken):
				return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
			default:
				return c.Status(500).JSON(fiber.Map{"error": "Failed to verify session"})
			}
		}

		// Set user info in context for downstream handlers
		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUserEmail, user.Email)
		c.Locals(LocalUserName, user.Name)
		c.Locals(LocalUserRole, string(user.Role))

		return c.Next()
	}
}

// RequireRole lets the request through only when the authenticated user has
// one of roles.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalUserRole).(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		for _, r := range roles {
			if string(r) == role {
				return c.Next()
			}
		}

		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires role " + strings.Join(names, " or "),
		})
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}
