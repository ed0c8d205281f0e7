// handlers/levelcap_routes.go
package handlers

import (
	"cobblemon-community-api/middleware"
	"cobblemon-community-api/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLevelCapRoutes(app *fiber.App, db *gorm.DB, levelCapService *services.LevelCapService) {
	// The plugin resolves effective caps with the shared server token
	app.Get("/api/level-caps/effective", middleware.ServerTokenMiddleware(), levelCapService.GetEffectiveCaps)

	admin := app.Group("/api/admin/level-caps", middleware.UserContextMiddleware(), middleware.RequireAdmin(db))
	admin.Get("/config", levelCapService.GetConfig)
	admin.Put("/config", levelCapService.UpdateConfig)
	admin.Post("/static-rules", levelCapService.CreateStaticRule)
	admin.Put("/static-rules/:id", levelCapService.UpdateStaticRule)
	admin.Delete("/static-rules/:id", levelCapService.DeleteStaticRule)
	admin.Post("/time-rules", levelCapService.CreateTimeRule)
	admin.Put("/time-rules/:id", levelCapService.UpdateTimeRule)
	admin.Delete("/time-rules/:id", levelCapService.DeleteTimeRule)
	admin.Get("/history", levelCapService.GetHistory)
}
