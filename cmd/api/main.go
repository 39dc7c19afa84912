package main

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cueclub-api/internal/application/service"
	"github.com/sangkips/cueclub-api/internal/config"
	"github.com/sangkips/cueclub-api/internal/infrastructure/database"
	"github.com/sangkips/cueclub-api/internal/infrastructure/repository"
	"github.com/sangkips/cueclub-api/internal/presentation/http/handler"
	"github.com/sangkips/cueclub-api/internal/presentation/http/routes"
	"github.com/sangkips/cueclub-api/pkg/printer"
	"github.com/sangkips/cueclub-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	if cfg.EnvFile != "" {
		logger.Info("loaded env file", zap.String("path", cfg.EnvFile))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg, logger); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	tableTypeRepo := repository.NewTableTypeRepository(db)
	tableRepo := repository.NewTableRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	billRepo := repository.NewBillRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	if purged, err := idempotencyRepo.Purge(context.Background(), time.Now()); err != nil {
		logger.Warn("failed to purge expired idempotency keys", zap.Error(err))
	} else if purged > 0 {
		logger.Info("purged expired idempotency keys", zap.Int64("count", purged))
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		logger.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NullPrinter{}
	}

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, database.DefaultSettings(cfg))
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	catalogService := service.NewCatalogService(tableTypeRepo, tableRepo, categoryRepo, productRepo)
	promotionService := service.NewPromotionService(promotionRepo)
	sessionService := service.NewSessionService(tx, sessionRepo, tableRepo, productRepo, promotionRepo, billRepo, settingsService, logger)
	billService := service.NewBillService(billRepo)
	printerService := service.NewPrinterService(thermalPrinter, billRepo, settingsService, cfg.Printer.Type, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Catalog:   handler.NewCatalogHandler(catalogService, sessionService),
		Promotion: handler.NewPromotionHandler(promotionService),
		Session:   handler.NewSessionHandler(sessionService),
		Bill:      handler.NewBillHandler(billService, settingsService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.App.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named(cfg.App.Name)
}
