package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalogo/internal/cache"
	"catalogo/internal/config"
	"catalogo/internal/database"
	apperrors "catalogo/internal/errors"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/server"
	"catalogo/internal/services"
	"catalogo/pkg/logger"
	"catalogo/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logr, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, logr *zap.Logger) error {
	ctx := context.Background()

	// --- Store ---
	var productRepo repositories.ProductRepository
	if cfg.DatabaseDriver == config.DriverMemory {
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				logr.Warn("Error closing database", zap.Error(err))
			}
		}()
		productRepo = repositories.NewGORMProductRepository(db)
	}
	logr.Info("Product store ready", zap.String("driver", cfg.DatabaseDriver))

	// --- Cache ---
	if cfg.RedisAddr != "" {
		redisClient, err := cache.InitRedis(ctx, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		productRepo = repositories.NewCachedProductRepository(productRepo, cache.NewProductCache(redisClient, cfg.CacheTTL), logr)
		logr.Info("Product cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	// --- Events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Queue:    cfg.RabbitMQQueue,
		}, logr)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeProductEvents(rabbitmq.NewProductEventLogger(logr)); err != nil {
			logr.Warn("Failed to start product event consumer", zap.Error(err))
		}
	}

	productService := services.NewProductService(productRepo, publisher, logr)

	if cfg.SeedProducts {
		seedProducts(ctx, productService, logr)
	}

	app := server.NewApp(productService, logr)

	errCh := make(chan error, 1)
	go func() {
		logr.Info("Starting server", zap.String("port", cfg.AppPort))
		errCh <- app.Listen(cfg.AppPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		logr.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logr.Warn("Error during Fiber shutdown", zap.Error(err))
	}
	logr.Info("Server gracefully stopped")
	return nil
}

// seedProducts populates the store with a small sample catalog.
func seedProducts(ctx context.Context, svc *services.ProductService, logr *zap.Logger) {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	products := []models.CreateProductRequest{
		{Nombre: "soda", Cantidad: intPtr(12), Precio: floatPtr(0.12), Descripcion: "esta rico", Categoria: "Galletas"},
		{Nombre: "soda field", Cantidad: intPtr(20), Precio: floatPtr(0.7), Descripcion: "esta buenaso", Categoria: "Galletas"},
		{Nombre: "Coca Cola personal de vidrio", Cantidad: intPtr(35), Precio: floatPtr(2.5), Descripcion: "esta refrescante", Categoria: "Gaseosas"},
	}

	for _, req := range products {
		product, err := svc.CreateProduct(ctx, req)
		switch {
		case errors.Is(err, apperrors.ErrDuplicateName):
			logr.Debug("Seed product already present", zap.String("nombre", req.Nombre))
		case err != nil:
			logr.Warn("Error seeding product", zap.String("nombre", req.Nombre), zap.Error(err))
		default:
			logr.Info("Seeded product", zap.String("nombre", product.Nombre), zap.Uint("id", product.ID))
		}
	}
}
