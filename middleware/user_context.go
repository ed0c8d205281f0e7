// middleware/user_context.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the Discord identity forwarded by the bot
// frontend and attaches it to the request context for handlers.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		discordID := c.Get("X-Discord-ID")
		discordUsername := c.Get("X-Discord-Username")

		c.Locals("discordId", discordID)
		c.Locals("discordUsername", discordUsername)

		return c.Next()
	}
}
