package router

import (
	"time"

	"github.com/Michelteixeiradev/sistema-loja/internal/config"
	"github.com/Michelteixeiradev/sistema-loja/internal/handler"
	"github.com/Michelteixeiradev/sistema-loja/internal/middleware"
	"github.com/Michelteixeiradev/sistema-loja/internal/model"
	"github.com/Michelteixeiradev/sistema-loja/internal/repository"
	"github.com/Michelteixeiradev/sistema-loja/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	stockSvc := service.NewStockService(movementRepo, productRepo)
	productSvc := service.NewProductService(productRepo, saleRepo, stockSvc)
	saleSvc := service.NewSaleService(saleRepo, productRepo, stockSvc)
	reportSvc := service.NewReportService(saleRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc, saleRepo, cfg.ExportStoragePath)
	stockH := handler.NewStockHandler(stockSvc)
	reportsH := handler.NewReportsHandler(reportSvc, cfg.ExportStoragePath)
	priceH := handler.NewPriceCheckHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Price check — no auth required
	r.GET("/v1/price/:barcode", priceH.GetPriceByBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleSeller)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Sales — both roles sell and consult
		v1.POST("/sales", anyRole, salesH.RegisterSale)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.GetByID)
		v1.GET("/sales/:id/receipt", anyRole, salesH.Receipt)

		// Catalog — reads open to both roles, writes admin only
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.GetByID)
		v1.GET("/products/barcode/:barcode", anyRole, productsH.GetByBarcode)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
		}

		// Stock ledger
		v1.GET("/stock/movements", anyRole, stockH.ListMovements)
		v1.GET("/stock/alerts", anyRole, stockH.Alerts)
		v1.POST("/stock/movements", adminOnly, stockH.RecordMovement)

		// Reports — admin only
		reports := v1.Group("/reports", adminOnly)
		{
			reports.GET("/sales", reportsH.SalesReport)
			reports.GET("/sales/export", reportsH.ExportSales)
			reports.GET("/top-products", reportsH.TopProducts)
		}

		// Users — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
