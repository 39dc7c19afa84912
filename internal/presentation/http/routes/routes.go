package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cueclub-api/internal/config"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/internal/presentation/http/handler"
	"github.com/sangkips/cueclub-api/internal/presentation/http/middleware"
	"github.com/sangkips/cueclub-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Settings  *handler.SettingsHandler
	Catalog   *handler.CatalogHandler
	Promotion *handler.PromotionHandler
	Session   *handler.SessionHandler
	Bill      *handler.BillHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-staff rate limiter
		rateLimiter := middleware.NewStaffRateLimiter(rateLimiterConfig(&deps.Cfg.RateLimit))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	rlc := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlc.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlc.BurstSize = cfg.Requests
	}
	return rlc
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	admin := middleware.RequireRole(enum.StaffRoleAdmin.String())
	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	// Staff
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/staff", admin, h.Auth.CreateStaff)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", admin, h.Settings.UpdateSettings)

	registerCatalogRoutes(protected, h, admin)
	registerPromotionRoutes(protected, h, admin)
	registerSessionRoutes(protected, h, idempotent)
	registerBillRoutes(protected, h)

	// Printer
	protected.GET("/printer/status", h.Printer.GetStatus)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers, admin gin.HandlerFunc) {
	tableTypes := protected.Group("/table-types")
	{
		tableTypes.GET("", h.Catalog.ListTableTypes)
		tableTypes.POST("", admin, h.Catalog.CreateTableType)
		tableTypes.PUT("/:id", admin, h.Catalog.UpdateTableType)
	}

	tables := protected.Group("/tables")
	{
		tables.GET("", h.Catalog.ListTables)
		tables.POST("", admin, h.Catalog.CreateTable)
		tables.GET("/:id", h.Catalog.GetTable)
		tables.PUT("/:id", admin, h.Catalog.UpdateTable)
		tables.GET("/:id/session", h.Catalog.GetTableSession)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", admin, h.Catalog.CreateCategory)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", admin, h.Catalog.CreateProduct)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", admin, h.Catalog.UpdateProduct)
	}
}

func registerPromotionRoutes(protected *gin.RouterGroup, h *Handlers, admin gin.HandlerFunc) {
	promotions := protected.Group("/promotions")
	{
		promotions.GET("", h.Promotion.List)
		promotions.POST("", admin, h.Promotion.Create)
		promotions.GET("/:id", h.Promotion.Get)
		promotions.PUT("/:id", admin, h.Promotion.Update)
		promotions.PATCH("/:id/active", admin, h.Promotion.SetActive)
	}
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sessions := protected.Group("/sessions")
	{
		// Check-in and checkout use idempotency keys to survive retries
		sessions.POST("", idempotent, h.Session.Open)
		sessions.GET("", h.Session.List)
		sessions.GET("/:id", h.Session.Get)
		sessions.GET("/:id/bill", h.Bill.GetBySession)
		sessions.POST("/:id/items", h.Session.AddItem)
		sessions.PATCH("/:id/items/:itemId", h.Session.UpdateItem)
		sessions.DELETE("/:id/items/:itemId", h.Session.RemoveItem)
		sessions.GET("/:id/preview", h.Session.Preview)
		sessions.POST("/:id/checkout", idempotent, h.Session.Checkout)
		sessions.POST("/:id/void", h.Session.Void)
		sessions.POST("/:id/transfer", h.Session.Transfer)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers) {
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/:id", h.Bill.Get)
		bills.PATCH("/:id/pay", h.Bill.Pay)
		bills.PATCH("/:id/note", h.Bill.SetNote)
		bills.POST("/:id/print", h.Printer.PrintBill)
	}
}
