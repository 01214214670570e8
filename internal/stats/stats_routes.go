package stats

import (
	"github.com/pandiaraajan-hub/workerprolite/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	stats := r.Group("/stats")
	stats.Use(middleware.ContextLogger(logger))
	{
		stats.GET("", middleware.RateLimitByIP(5, 20), handler.GetStats)
	}
}
