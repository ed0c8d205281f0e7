// handlers/mod_routes.go
package handlers

import (
	"cobblemon-community-api/middleware"
	"cobblemon-community-api/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupModRoutes(app *fiber.App, db *gorm.DB, modService *services.ModService) {
	app.Get("/api/mods", modService.GetAllMods)

	admin := app.Group("/api/mods", middleware.UserContextMiddleware(), middleware.RequireAdmin(db))
	admin.Post("/", modService.UploadMod)
	admin.Delete("/:id", modService.DeleteMod)
}
