package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-sales-inventory/internal/config"
	"go-sales-inventory/internal/handler"
	"go-sales-inventory/internal/logger"
	"go-sales-inventory/internal/metrics"
	"go-sales-inventory/internal/middleware"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/internal/seed"
	"go-sales-inventory/internal/service"
	"go-sales-inventory/internal/ws"
	"go-sales-inventory/pkg/database"
	"go-sales-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Load Env
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// 2. Setup Database
	gormLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		gormLevel = gormlogger.Info
	}
	db, err := database.Connect(cfg, logger.NewGormLogger(log, gormLevel, 200*time.Millisecond))
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	// 3. Seed admin user and, outside production, the demo catalog
	seeder := seed.New(db, log)
	if _, err := seeder.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Warn("seed admin", zap.Error(err))
	}
	if cfg.SeedDemoData {
		if _, err := seeder.DemoData(); err != nil {
			log.Warn("seed demo data", zap.Error(err))
		}
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	loc := cfg.Location()
	saleMetrics := metrics.NewSales()
	locks := service.NewProductLocks()
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	salesmanRepo := repository.NewSalesmanRepo(db)

	saleService := service.NewSaleService(service.SaleServiceParams{
		ProductRepo:  productRepo,
		CustomerRepo: customerRepo,
		SaleRepo:     saleRepo,
		DB:           db,
		Locks:        locks,
		Events:       wsHub,
		Metrics:      saleMetrics,
		Log:          log,
	})
	invService := service.NewInventoryService(productRepo, locationRepo, db, locks, wsHub, saleMetrics, log)
	dashService := service.NewDashboardService(productRepo, saleRepo, cfg.LowStockThreshold, loc)
	authService := service.NewAuthService(userRepo, tokens, log)
	userService := service.NewUserService(userRepo)

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, log),
		User:      handler.NewUserHandler(userService, log),
		Inventory: handler.NewInventoryHandler(invService, log),
		Sale:      handler.NewSaleHandler(saleService, loc, log),
		Location:  handler.NewLocationHandler(service.NewLocationService(locationRepo), log),
		Customer:  handler.NewCustomerHandler(service.NewCustomerService(customerRepo), log),
		Salesman:  handler.NewSalesmanHandler(service.NewSalesmanService(salesmanRepo), log),
		Dashboard: handler.NewDashboardHandler(dashService, log),
		Seed:      handler.NewSeedHandler(seeder, log),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(middleware.RequestLogger(log))

	// 7. Routes
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(saleMetrics.Registry, promhttp.HandlerOpts{})))
	app.Get("/ws", ws.RequireUpgrade, wsHub.Handler())

	var api fiber.Router = app
	if cfg.APIPrefix != "" {
		api = app.Group(cfg.APIPrefix)
	}
	handler.RegisterRoutes(api, handlers, middleware.RequireAuth(authService))

	// 8. Graceful Shutdown
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic("listen", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
