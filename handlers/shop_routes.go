// handlers/shop_routes.go
package handlers

import (
	"cobblemon-community-api/middleware"
	"cobblemon-community-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupShopRoutes(app *fiber.App, shopService *services.ShopService) {
	app.Get("/api/shop/stock", shopService.GetStock)

	// Purchases and claims originate from the Minecraft plugin
	server := app.Group("/api/shop", middleware.ServerTokenMiddleware())
	server.Post("/purchase", shopService.Purchase)
	server.Post("/claim", shopService.Claim)
	server.Get("/balance", shopService.GetBalance)
}
