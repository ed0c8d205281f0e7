// middleware/admin.go
package middleware

import (
	"log"

	"cobblemon-community-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireDiscordID rejects requests that arrive without a Discord identity.
func RequireDiscordID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		discordID, _ := c.Locals("discordId").(string)
		if discordID == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "No autenticado",
			})
		}
		return c.Next()
	}
}

// RequireAdmin loads the requesting user and rejects non-admins.
func RequireAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		discordID, _ := c.Locals("discordId").(string)
		if discordID == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "No autenticado",
			})
		}

		var user models.User
		if err := db.Where("discord_id = ?", discordID).First(&user).Error; err != nil {
			log.Printf("[ADMIN] Denied unknown user %s on %s", discordID, c.Path())
			return c.Status(403).JSON(fiber.Map{
				"error": "Acceso denegado",
			})
		}

		if !user.IsAdmin {
			log.Printf("[ADMIN] Denied non-admin %s on %s", discordID, c.Path())
			return c.Status(403).JSON(fiber.Map{
				"error": "Acceso denegado",
			})
		}

		return c.Next()
	}
}
