package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/barbearia-app/barbearia-backend/internal/auth"
	"github.com/barbearia-app/barbearia-backend/internal/models"
)

// Locals keys set by RequireAuth
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// RequireAuth validates the Bearer token and stores the caller's
// user ID and role in the request locals
func RequireAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token não fornecido",
			})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		userID, role, err := auth.ParseToken(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireAdmin blocks non-admin callers. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Acesso negado",
			})
		}
		return c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the locals
func GetUserID(c *fiber.Ctx) uint {
	if v, ok := c.Locals(LocalUserID).(uint); ok {
		return v
	}
	return 0
}

// GetRole returns the authenticated user's role from the locals
func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalRole).(string); ok {
		return v
	}
	return ""
}
