package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"proposal-backend/internal/config"
	"proposal-backend/internal/db"
	"proposal-backend/internal/handlers"
	"proposal-backend/internal/repository"
	"proposal-backend/internal/services"
	"proposal-backend/internal/telegram"
	"proposal-backend/internal/utils"
)

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// Init DB
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	store := repository.NewPostgres(pool)

	// Telegram channel used as photo storage; without credentials the
	// client stores photos inline.
	cdn := telegram.New(telegram.Config{
		BotToken:  cfg.TelegramBotToken,
		ChannelID: cfg.TelegramChannelID,
		Retry:     cfg.Retry,
	})
	if !cdn.Configured() {
		log.Println("Warning: Telegram storage not configured, photos will be stored inline")
	}

	// Services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPasswordHash)
	photoService := services.NewPhotoService(store, cdn)
	categoryService := services.NewCategoryService(store, cdn)
	proposalService := services.NewProposalService(store)
	settingsService := services.NewSettingsService(store)

	// Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024, // validator enforces the real 10MB cap
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Routes
	api := app.Group("/api")

	// Public Routes
	api.Post("/auth/login", handlers.LoginHandler(authService))

	public := api.Group("/public")
	public.Get("/random-proposal", handlers.RandomProposalHandler(proposalService))
	public.Get("/settings", handlers.PublicSettingsHandler(settingsService))

	// Admin Routes
	admin := api.Group("/admin")
	admin.Use(handlers.AuthRequired(authService))

	admin.Get("/settings", handlers.GetSettingsHandler(settingsService))
	admin.Put("/settings", handlers.UpdateSettingsHandler(settingsService))

	admin.Post("/categories", handlers.CreateCategoryHandler(categoryService))
	admin.Get("/categories", handlers.ListCategoriesHandler(categoryService))
	admin.Get("/categories/:category_id", handlers.GetCategoryHandler(categoryService))
	admin.Put("/categories/:category_id", handlers.UpdateCategoryHandler(categoryService))
	admin.Delete("/categories/:category_id", handlers.DeleteCategoryHandler(categoryService))

	admin.Post("/categories/:category_id/photos/:side", handlers.UploadPhotoHandler(photoService))
	admin.Delete("/categories/:category_id/photos/:photo_id", handlers.DeletePhotoHandler(photoService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Start Server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
