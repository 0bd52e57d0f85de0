package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/stockroom/backend/config"
	"github.com/stockroom/backend/internal/domain"
)

// SetupRouter creates and configures the Gin router. Background work started
// for the router stops when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Import.MaxFileSize

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(NewIPRateLimiter(ctx, cfg.RateLimit.PerIP, cfg.RateLimit.IdleTTL)))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", handler.Login)

		auth := handler.auth
		api := v1.Group("", AuthMiddleware(auth))
		can := func(perm domain.Permission) gin.HandlerFunc {
			return RequirePermission(auth, perm)
		}

		api.GET("/dashboard", can(domain.PermView), handler.Dashboard)
		api.GET("/activities", can(domain.PermView), handler.Activities)

		// Catalog endpoints
		products := api.Group("/products")
		{
			products.GET("", can(domain.PermView), handler.ListProducts)
			products.POST("", can(domain.PermAdd), handler.CreateProduct)
			products.PUT("/:sku", can(domain.PermEdit), handler.UpdateProduct)
			products.DELETE("/:sku", can(domain.PermDelete), handler.DeleteProduct)
		}
		api.GET("/scan/:sku", can(domain.PermBarcode), handler.ScanProduct)
		api.GET("/reports", can(domain.PermReports), handler.Reports)

		// Spreadsheet endpoints
		api.GET("/export", can(domain.PermExport), handler.ExportSpreadsheet)
		imports := api.Group("/import", can(domain.PermImport))
		{
			imports.GET("/template", handler.DownloadTemplate)
			imports.POST("/preview", handler.PreviewSpreadsheet)
			imports.POST("", handler.ImportSpreadsheet)
		}

		// Permission matrix, admin only
		perms := api.Group("/permissions", AdminOnly())
		{
			perms.GET("", handler.GetPermissions)
			perms.PUT("", handler.UpdatePermissions)
			perms.DELETE("", handler.ResetPermissions)
		}
	}

	return router
}
