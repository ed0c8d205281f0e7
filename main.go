package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cobblemon-community-api/handlers"
	"cobblemon-community-api/models"
	"cobblemon-community-api/services"
	"cobblemon-community-api/utils"
	"cobblemon-community-api/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 200 * 1024 * 1024, // mod uploads
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Discord-ID, X-Discord-Username, X-Server-Token",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Starter{},
		&models.Tournament{},
		&models.LevelCapConfig{},
		&models.ShopStock{},
		&models.ShopPurchase{},
		&models.Mod{},
		&models.ServerStatus{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	gachaService := services.NewGachaService(db, services.NewPersonaClient())
	tournamentService := services.NewTournamentService(db)
	levelCapService := services.NewLevelCapService(db)
	playerService := services.NewPlayerService(db)
	verificationService := services.NewVerificationService(db)
	shopService := services.NewShopService(db)
	modService := services.NewModService(db)
	adminService := services.NewAdminService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statusClient := workers.NewServerStatusClient(db)
	go workers.PollServerStatus(ctx, statusClient, 60*time.Second)

	services.StartScheduler(shopService, tournamentService, levelCapService)

	handlers.SetupGachaRoutes(app, gachaService)
	handlers.SetupTournamentRoutes(app, db, tournamentService)
	handlers.SetupLevelCapRoutes(app, db, levelCapService)
	handlers.SetupPlayerRoutes(app, playerService, verificationService)
	handlers.SetupShopRoutes(app, shopService)
	handlers.SetupModRoutes(app, db, modService)
	handlers.SetupAdminRoutes(app, db, adminService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5200"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
