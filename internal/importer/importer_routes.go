package importer

import (
	"github.com/pandiaraajan-hub/workerprolite/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	imports := r.Group("/import")
	imports.Use(middleware.ContextLogger(logger))
	{
		// Imports are heavy; keep the rate tight.
		imports.POST("/excel", middleware.RateLimitByIP(0.2, 2), handler.ImportExcel)
	}
}
