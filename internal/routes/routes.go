package routes

import (
	"net/http"

	"paperdesk_backend/internal/handlers"
	"paperdesk_backend/internal/logger"
	"paperdesk_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes registers all HTTP routes under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", healthCheck)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.OrderHandler.RegisterRoutes(api)
		appHandlers.CatalogHandler.RegisterRoutes(api)
		appHandlers.CompanyHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)

		appHandlers.PageHandler.RegisterRoutes(api)
		appHandlers.PostHandler.RegisterRoutes(api)
		appHandlers.EssayHandler.RegisterRoutes(api)
		appHandlers.PhaseHandler.RegisterRoutes(api)
		appHandlers.PointHandler.RegisterRoutes(api)
	}

	logger.Info("HTTP routes registered")
}

// healthCheck pings the database handle the DB middleware put on the
// context.
func healthCheck(c *gin.Context) {
	value, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "missing"})
		return
	}

	db, ok := value.(*gorm.DB)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "missing"})
		return
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
