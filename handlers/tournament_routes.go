// handlers/tournament_routes.go
package handlers

import (
	"cobblemon-community-api/middleware"
	"cobblemon-community-api/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTournamentRoutes(app *fiber.App, db *gorm.DB, tournamentService *services.TournamentService) {
	// Public reads
	app.Get("/api/tournaments", tournamentService.GetAllTournaments)
	app.Get("/api/tournaments/:id", tournamentService.GetTournamentByID)

	// Bracket management is admin-only
	admin := app.Group("/api/tournaments", middleware.UserContextMiddleware(), middleware.RequireAdmin(db))
	admin.Post("/", tournamentService.CreateTournament)
	admin.Patch("/:id", tournamentService.PatchTournament)
	admin.Delete("/:id", tournamentService.DeleteTournament)
}
