// middleware/server_token.go
package middleware

import (
	"crypto/subtle"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// ServerTokenMiddleware validates the shared token the Minecraft server mod
// sends on sync and verification endpoints.
func ServerTokenMiddleware() fiber.Handler {
	expectedToken := os.Getenv("SERVER_API_TOKEN")
	if expectedToken == "" {
		log.Println("[SERVER_AUTH] SERVER_API_TOKEN is not set, server endpoints are unprotected")
	}

	return func(c *fiber.Ctx) error {
		if expectedToken == "" {
			return c.Next()
		}

		token := c.Get("X-Server-Token")
		if token == "" {
			log.Printf("[SERVER_AUTH] Missing X-Server-Token for %s", c.Path())
			return c.Status(401).JSON(fiber.Map{
				"error": "Token de servidor requerido",
			})
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
			log.Printf("[SERVER_AUTH] Invalid server token for %s", c.Path())
			return c.Status(401).JSON(fiber.Map{
				"error": "Token de servidor inválido",
			})
		}

		return c.Next()
	}
}
