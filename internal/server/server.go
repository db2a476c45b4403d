// Package server assembles the Fiber application serving the catalog API.
package server

import (
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
)

// Options controls how the app is assembled.
type Options struct {
	// Production hides error details from response bodies.
	Production bool
	// StoreDriver is reported by /health.
	StoreDriver string
	// Authorizer guards every product route. Nil means services.AllowAll.
	Authorizer services.Authorizer
	// AccessLog enables the per-request access log line.
	AccessLog bool
}

// NewApp builds the app: middleware, "/", "/health", "/metrics", the product
// routes under /api and the catch-all 404.
func NewApp(service *services.ProductService, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "product-catalog",
		ErrorHandler:          handlers.ErrorHandler(opts.Production),
		DisableStartupMessage: true,
	})

	app.Use(middleware.Metrics())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
			Output: log.Logger,
		}))
	}
	app.Use(cors.New())

	handlers.NewStatusHandler(opts.StoreDriver).RegisterRoutes(app)
	app.Get("/metrics", middleware.PrometheusHandler())

	authorizer := opts.Authorizer
	if authorizer == nil {
		authorizer = services.AllowAll{}
	}
	productHandler := handlers.NewProductHandler(service,
		handlers.WithRouteAuthorizer(authorizer),
		handlers.WithProductionErrors(opts.Production),
	)
	productHandler.RegisterRoutes(app.Group("/api"))

	app.Use(handlers.NotFound)

	return app
}
