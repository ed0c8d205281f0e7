// handlers/admin_routes.go
package handlers

import (
	"cobblemon-community-api/middleware"
	"cobblemon-community-api/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAdminRoutes(app *fiber.App, db *gorm.DB, adminService *services.AdminService) {
	// Reset carries its own hardcoded allow-list check on top of the identity
	app.Post("/api/admin/reset", middleware.UserContextMiddleware(), middleware.RequireDiscordID(), adminService.ResetDatabase)

	admin := app.Group("/api/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin(db))
	admin.Post("/ban", adminService.SetBan)
}
