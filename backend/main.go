package main

import (
	"log"

	"coursesite/backend/config"
	"coursesite/backend/middleware"
	"coursesite/backend/payments"
	"coursesite/backend/routes"
	"coursesite/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Stripe client, constructed once and shared
	stripeClient := payments.NewStripeClient(cfg.StripeSecretKey)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, stripeClient)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
