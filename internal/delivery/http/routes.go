package http

import (
	"github.com/gin-gonic/gin"

	"github.com/invoiceagent/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Matching endpoints, consumed by the extraction pipeline and the
	// review surface
	router.POST("/process-invoice", handler.ProcessInvoice)
	router.POST("/update-aliases", handler.UpdateAliases)

	return router
}
