package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"promocrm/config"
	"promocrm/middleware"
	"promocrm/models"
	"promocrm/routes"
	"promocrm/utils"
	"promocrm/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "SERVER: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Sentry when a DSN is configured
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("⚠️ Sentry initialization failed: %v", err)
		}
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Seed the default admin account and catalog categories
	if err := models.CreateDefaultAdmin(config.DB, config.AppConfig.AdminEmail, config.AppConfig.AdminPassword); err != nil {
		logger.Fatalf("Failed to create default admin: %v", err)
	}
	if err := models.CreateDefaultCategories(config.DB); err != nil {
		logger.Fatalf("Failed to create default categories: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024,
	})

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Read cache for catalog list endpoints
	cache := utils.NewCache(config.AppConfig.CacheCapacity, config.AppConfig.CacheTTL)

	// Initialize and start reminder worker
	mailer := utils.NewMailer()
	reminderWorker := worker.NewReminderWorker(config.DB, mailer, log.New(os.Stdout, "REMINDER: ", log.LstdFlags))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reminderWorker.Start(ctx)

	// Periodic cleanup of expired cache entries
	go cache.CleanLoop(ctx, config.AppConfig.CacheTTL)

	// Root status endpoint; registered before SetupRoutes installs the 404
	// fallback middleware
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Setup routes
	routes.SetupRoutes(app, config.DB, cache)

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
