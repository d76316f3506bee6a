package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/config"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/handlers"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/middleware"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/queue"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, st store.Store, queueClient queue.Queue, cfg config.Config) *handlers.Handler {
	// Create handler instance
	h := handlers.New(logger, st, queueClient, cfg.Forecast)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Product Routes
	v1.Get("/products", h.ListProducts)

	// Forecast Routes
	v1.Get("/products/:product_id/forecast", h.Forecast)
	v1.Post("/products/:product_id/forecast", h.ForecastPost)
	v1.Post("/forecast/upload", h.ForecastUpload)

	// Sales Ingestion Routes
	v1.Post("/products/:product_id/sales", h.RecordSales)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, st store.Store, queueClient queue.Queue, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Sales Forecast API",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, st, queueClient, cfg)

	return app
}
