package middleware

import (
	"crypto/subtle"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// ValidateEvolutionKey checks the apikey header Evolution attaches to
// webhook deliveries against EVOLUTION_API_KEY. Gated per environment
// in the route setup so local testing can skip it.
func ValidateEvolutionKey() fiber.Handler {
	expected := os.Getenv("EVOLUTION_API_KEY")

	return func(c *fiber.Ctx) error {
		got := c.Get("apikey")
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			log.Printf("⚠️  Webhook rejected: bad apikey from %s", c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid API key",
			})
		}
		return c.Next()
	}
}
