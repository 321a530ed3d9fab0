package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"doceria_backend/internal/controller"
	"doceria_backend/internal/middleware"
	"doceria_backend/internal/model"
	"doceria_backend/pkg/billing"
	"doceria_backend/pkg/config"
	"doceria_backend/pkg/cron"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/email"
	"doceria_backend/pkg/marketing"
	"doceria_backend/pkg/seed"
	"doceria_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)
	protected.Post("/onboarding", controller.CompleteOnboarding)

	// Product routes
	products := protected.Group("/products")
	products.Get("/", controller.ListMyProducts)
	products.Get("/:id", controller.GetProduct)
	products.Post("/", controller.CreateProduct)
	products.Put("/:id", controller.UpdateProduct)
	products.Delete("/:id", controller.DeleteProduct)
	products.Post("/:product_id/photo", controller.UploadProductPhoto)

	// Order routes; creation is quota-gated by plan
	orders := protected.Group("/orders")
	orders.Get("/", controller.ListMyOrders)
	orders.Get("/:id", controller.GetOrder)
	orders.Post("/", middleware.CheckOrderLimit(), controller.CreateOrder)
	orders.Put("/:id/status", controller.UpdateOrderStatus)
	orders.Delete("/:id", controller.DeleteOrder)

	// Production routes
	production := protected.Group("/production")
	production.Get("/batches", controller.ListBatches)
	production.Post("/batches", controller.CreateBatch)
	production.Put("/batches/:id/start", controller.StartBatch)
	production.Put("/batches/:id/complete", controller.CompleteBatch)
	production.Delete("/batches/:id", controller.DeleteBatch)

	// Finance routes
	finance := protected.Group("/finance")
	finance.Get("/transactions", controller.ListTransactions)
	finance.Post("/transactions", controller.CreateTransaction)
	finance.Delete("/transactions/:id", controller.DeleteTransaction)
	finance.Get("/summary", controller.GetFinancialSummary)

	// Advanced reports are Pro-only
	reports := protected.Group("/reports", middleware.CheckAdvancedReports())
	reports.Get("/financial", controller.GetFinancialSummary)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/metrics", controller.GetDashboardMetrics)

	// Marketing routes; generation is gated by plan feature + daily cap
	marketingRoutes := protected.Group("/marketing")
	marketingRoutes.Get("/schedules", controller.ListSchedules)
	marketingRoutes.Post("/schedules", middleware.CheckGenerationLimit(), controller.GenerateSchedule)
	marketingRoutes.Delete("/schedules/:id", controller.DeleteSchedule)

	// Billing routes
	billingRoutes := api.Group("/billing")
	billingRoutes.Get("/plans", controller.ListPlans)

	billingProtected := billingRoutes.Use(middleware.AuthMiddleware())
	billingProtected.Post("/create-checkout-session", controller.CreateCheckoutSession)
	billingProtected.Post("/create-portal-session", controller.CreatePortalSession)

	// Stripe webhook (verified by signature, not by JWT)
	api.Post("/webhook", controller.HandleStripeWebhook)
}

func main() {
	cfg := config.Load()

	if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.From); err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	if err := storage.InitStorage(); err != nil {
		log.Fatal("Could not initialize storage:", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.Confectioner{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.ProductionBatch{},
		&model.Transaction{},
		&model.MarketingSchedule{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seed.SeedDemoData(database.GetDB())
	}

	controller.InitBillingController(billing.NewService(billing.NewStore(database.GetDB())))
	controller.InitMarketingController(marketing.NewGenerator(cfg.OpenAI.APIKey))

	cron.InitMonthlySummaryCron()
	cron.InitWinBackCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
