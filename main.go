package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/identity"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Order events (optional) ---
	var publisher services.MessagePublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQEnabled {
		mqClient, err = rabbitmq.NewClient(rabbitmq.DefaultConfig(cfg.RabbitMQURL), logger)
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	app, err := newApp(cfg, publisher, logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	if mqClient != nil {
		notifier := services.NewNotificationService(logger)
		err := mqClient.Consume(func(body []byte) error {
			_, err := notifier.HandleOrderPlaced(body)
			return err
		})
		if err != nil {
			logger.Error("failed to start order event consumer", zap.Error(err))
		}
	}

	// --- Start HTTP Server ---
	logger.Info("starting server", zap.String("port", cfg.AppPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}

// newApp wires the catalog, carts, ledger and user directory into a Fiber app.
// publisher may be nil.
func newApp(cfg *config.Config, publisher services.MessagePublisher, logger *zap.Logger) (*fiber.App, error) {
	ids := identity.NewAllocator()

	userRepo, orderRepo, err := openStores(cfg, ids)
	if err != nil {
		return nil, err
	}
	productRepo := repositories.NewMemoryProductRepository(ids)
	cartRepo := repositories.NewMemoryCartRepository()
	inventory := services.NewInventory(productRepo, cartRepo)

	// --- Initialize Services ---
	productService := services.NewProductService(inventory, cfg.ProductDeletePolicy, logger)
	cartService := services.NewCartService(inventory, logger)
	checkoutService := services.NewCheckoutService(inventory, orderRepo, userRepo, publisher, logger)
	orderService := services.NewOrderService(orderRepo)
	authService := services.NewAuthService(userRepo, cartRepo, cfg.JWTSecret, cfg.TokenTTL, logger)

	if _, err := authService.SeedAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}
	if cfg.SeedCatalog {
		seedProducts(productService, logger)
	}

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{AppName: "storefront"})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":        "healthy",
			"time":          time.Now().Format(time.RFC3339),
			"storage":       cfg.StorageDriver,
			"order_events":  publisher != nil,
			"delete_policy": cfg.ProductDeletePolicy,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	// Everything else needs a token; role checks happen per route group.
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewProductHandler(productService).RegisterRoutes(protected)
	handlers.NewCartHandler(cartService).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService, checkoutService).RegisterRoutes(protected)

	return app, nil
}

func openStores(cfg *config.Config, ids *identity.Allocator) (repositories.UserRepository, repositories.OrderRepository, error) {
	if cfg.StorageDriver == "memory" {
		return repositories.NewMemoryUserRepository(ids), repositories.NewMemoryOrderRepository(ids), nil
	}

	db, err := database.Open(cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	userRepo, err := repositories.NewGORMUserRepository(db, ids)
	if err != nil {
		return nil, nil, err
	}
	orderRepo, err := repositories.NewGORMOrderRepository(db, ids)
	if err != nil {
		return nil, nil, err
	}
	return userRepo, orderRepo, nil
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = atomicLevel
	return zapCfg.Build()
}

// seedProducts fills the catalog with the starter assortment.
func seedProducts(productService *services.ProductService, logger *zap.Logger) {
	products := []models.Product{
		{Name: "Organic Milk", Category: models.CategoryGroceries, Stock: 50, Price: decimal.RequireFromString("42.99"), Spec1: "2025-07-01", Spec2: "2025-07-15"},
		{Name: "Artisan Bread", Category: models.CategoryGroceries, Stock: 30, Price: decimal.RequireFromString("4.49"), Spec1: "2025-07-10", Spec2: "2025-07-13"},
		{Name: "Cotton T-Shirt (Red)", Category: models.CategoryClothes, Stock: 100, Price: decimal.RequireFromString("319.99"), Spec1: "L", Spec2: "Vietnam"},
		{Name: "Denim Jeans (Blue)", Category: models.CategoryClothes, Stock: 60, Price: decimal.RequireFromString("500.99"), Spec1: "32W/30L", Spec2: "Mexico"},
		{Name: "Wireless Mouse Pro", Category: models.CategoryElectronics, Stock: 25, Price: decimal.RequireFromString("3499.99"), Spec1: "Logitech", Spec2: "MX Master 3S"},
		{Name: "4K IPS Monitor", Category: models.CategoryElectronics, Stock: 15, Price: decimal.RequireFromString("6999.99"), Spec1: "Dell", Spec2: "U2723QE"},
		{Name: "Generic Mug", Category: models.CategoryGeneric, Stock: 99, Price: decimal.RequireFromString("9.99")},
	}

	for i := range products {
		if err := productService.CreateProduct(&products[i]); err != nil {
			logger.Warn("failed to seed product", zap.String("name", products[i].Name), zap.Error(err))
		}
	}
}
