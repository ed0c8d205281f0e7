// handlers/gacha_routes.go
package handlers

import (
	"cobblemon-community-api/middleware"
	"cobblemon-community-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGachaRoutes(app *fiber.App, gachaService *services.GachaService) {
	// Public reads
	app.Get("/api/starters", gachaService.GetAllStarters)
	app.Get("/api/gacha/roll", gachaService.GetRollStatus)

	// Rolls come from the website with a Discord identity attached
	secured := app.Group("/api/gacha", middleware.UserContextMiddleware(), middleware.RequireDiscordID())
	secured.Post("/roll", gachaService.Roll)
	secured.Post("/soul-driven", gachaService.SoulDriven)
}
