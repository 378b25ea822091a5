package server

import (
	"time"

	"catalogo/internal/handlers"
	"catalogo/internal/middleware"
	"catalogo/internal/services"
	"catalogo/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// NewApp builds the Fiber app with every route of the catalog service.
func NewApp(productService *services.ProductService, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "catalogo",
		Views:                 views.NewEngine(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: middleware.RequestIDKey}))
	app.Use(middleware.RequestLogger(log))

	handlers.NewPageHandler(productService, log).RegisterRoutes(app)
	handlers.NewProductHandler(productService, log).RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
