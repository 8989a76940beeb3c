package routes

import (
	"log"
	"os"

	"promocrm/config"
	controller "promocrm/controllers"
	"promocrm/middleware"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Google OAuth routes
	auth.Get("/google", controller.GoogleOAuth)
	auth.Get("/google/callback", controller.GoogleOAuthCallback)

	// Protected auth endpoints
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Post("/change-password", controller.ChangePassword)
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupPublicRoutes(app *fiber.App, db *gorm.DB, cache *utils.Cache) {
	inquiryController := controller.NewInquiryController(db, log.New(os.Stdout, "INQUIRY: ", log.LstdFlags))
	productController := controller.NewProductController(db, log.New(os.Stdout, "PRODUCT: ", log.LstdFlags), cache)
	catalogController := controller.NewCatalogController(db, log.New(os.Stdout, "CATALOG: ", log.LstdFlags), cache)
	slideController := controller.NewSlideController(db, log.New(os.Stdout, "SLIDE: ", log.LstdFlags), cache)

	// Public storefront endpoints, no auth
	public := app.Group("/public")
	public.Post("/inquiries", middleware.InquiryRateLimiter(), inquiryController.CreateInquiry)
	public.Get("/products", productController.GetProducts)
	public.Get("/products/:id", productController.GetProduct)
	public.Get("/categories", catalogController.GetCategories)
	public.Get("/brands", catalogController.GetBrands)
	public.Get("/slides", slideController.GetSlides)

	// Stored uploads are served statically
	app.Static(config.AppConfig.UploadBaseURL, config.AppConfig.UploadDir)
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB, cache *utils.Cache) {
	taskController := controller.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	inquiryController := controller.NewInquiryController(db, log.New(os.Stdout, "INQUIRY: ", log.LstdFlags))
	productController := controller.NewProductController(db, log.New(os.Stdout, "PRODUCT: ", log.LstdFlags), cache)
	catalogController := controller.NewCatalogController(db, log.New(os.Stdout, "CATALOG: ", log.LstdFlags), cache)
	slideController := controller.NewSlideController(db, log.New(os.Stdout, "SLIDE: ", log.LstdFlags), cache)
	clientController := controller.NewClientController(db, log.New(os.Stdout, "CLIENT: ", log.LstdFlags))
	reminderController := controller.NewReminderController(db, log.New(os.Stdout, "REMINDER: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	uploadController := controller.NewUploadController(log.New(os.Stdout, "UPLOAD: ", log.LstdFlags))

	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetStats)

	// Kanban task routes
	task := api.Group("/tasks")
	task.Post("/", taskController.CreateTask)
	task.Get("/", taskController.GetTasks)
	task.Put("/reorder", taskController.ReorderTask)
	task.Get("/:id", taskController.GetTask)
	task.Put("/:id", taskController.UpdateTask)
	task.Delete("/:id", taskController.DeleteTask)

	// WebSocket route for live board updates
	app.Get("/api/v1/tasks/board/live", websocket.New(func(c *websocket.Conn) {
		controller.HandleTaskBoardWS(c)
	}))

	// Inquiry (lead) routes
	inquiry := api.Group("/inquiries")
	inquiry.Post("/", inquiryController.CreateInquiry)
	inquiry.Get("/", inquiryController.GetInquiries)
	inquiry.Get("/:id", inquiryController.GetInquiry)
	inquiry.Put("/:id", inquiryController.UpdateInquiry)
	inquiry.Delete("/:id", inquiryController.DeleteInquiry)
	inquiry.Post("/:id/followups", inquiryController.AddFollowUp)
	inquiry.Get("/:id/followups", inquiryController.GetFollowUps)
	inquiry.Post("/:id/convert", inquiryController.ConvertInquiry)

	// Product routes
	product := api.Group("/products")
	product.Post("/", productController.CreateProduct)
	product.Get("/", productController.GetProducts)
	product.Get("/:id", productController.GetProduct)
	product.Put("/:id", productController.UpdateProduct)
	product.Delete("/:id", productController.DeleteProduct)

	// Category routes
	category := api.Group("/categories")
	category.Post("/", catalogController.CreateCategory)
	category.Get("/", catalogController.GetCategories)
	category.Put("/:id", catalogController.UpdateCategory)
	category.Delete("/:id", catalogController.DeleteCategory)

	// Brand routes
	brand := api.Group("/brands")
	brand.Post("/", catalogController.CreateBrand)
	brand.Get("/", catalogController.GetBrands)
	brand.Put("/:id", catalogController.UpdateBrand)
	brand.Delete("/:id", catalogController.DeleteBrand)

	// Slide routes
	slide := api.Group("/slides")
	slide.Post("/", slideController.CreateSlide)
	slide.Get("/", slideController.GetSlides)
	slide.Put("/:id", slideController.UpdateSlide)
	slide.Delete("/:id", slideController.DeleteSlide)

	// Client routes
	client := api.Group("/clients")
	client.Post("/", clientController.CreateClient)
	client.Get("/", clientController.GetClients)
	client.Get("/:id", clientController.GetClient)
	client.Put("/:id", clientController.UpdateClient)
	client.Delete("/:id", clientController.DeleteClient)

	// Reminder routes
	reminder := api.Group("/reminders")
	reminder.Post("/", reminderController.CreateReminder)
	reminder.Get("/", reminderController.GetReminders)
	reminder.Delete("/:id", reminderController.DeleteReminder)

	// Upload routes
	upload := api.Group("/uploads")
	upload.Post("/image", uploadController.UploadImage)
	upload.Delete("/:filename", uploadController.DeleteImage)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cache *utils.Cache) {
	// Build the Google OAuth client from the loaded config
	controller.InitOAuth()

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, db)
	SetupPublicRoutes(app, db, cache)
	SetupAPIRoutes(app, db, cache)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
