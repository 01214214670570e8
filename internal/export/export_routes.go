package export

import (
	"github.com/pandiaraajan-hub/workerprolite/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	exports := r.Group("/export")
	exports.Use(middleware.ContextLogger(logger))
	{
		exports.GET("/workers-csv", middleware.RateLimitByIP(0.5, 3), handler.ExportCSV)
		exports.GET("/workers", middleware.RateLimitByIP(0.5, 3), handler.ExportExcel)
	}
}
