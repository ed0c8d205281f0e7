// handlers/player_routes.go
package handlers

import (
	"cobblemon-community-api/middleware"
	"cobblemon-community-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService, verificationService *services.VerificationService) {
	// Public status read for the website
	app.Get("/api/server-status", playerService.GetServerStatus)
	app.Get("/api/players", playerService.GetAllPlayers)

	// Minecraft plugin endpoints, authenticated with the shared server token
	server := app.Group("/api", middleware.ServerTokenMiddleware())
	server.Post("/players/sync", playerService.Sync)
	server.Get("/players/ban-status", playerService.GetBanStatus)
	server.Post("/players/starter-given", playerService.MarkStarterGiven)
	server.Get("/players/verification-status", playerService.GetVerificationStatus)

	server.Post("/verify/register", verificationService.Register)
	server.Get("/verify/check", verificationService.Check)
	server.Post("/verify/verification-verify", verificationService.VerifyInGame)

	// The website submits the code with a Discord identity
	web := app.Group("/api/verify", middleware.UserContextMiddleware())
	web.Post("/code", verificationService.SubmitCode)
}
