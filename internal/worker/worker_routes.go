package worker

import (
	"github.com/pandiaraajan-hub/workerprolite/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	workers := r.Group("/workers")
	workers.Use(middleware.ContextLogger(logger))
	{
		workers.GET("", middleware.RateLimitByIP(5, 20), handler.GetAll)
		workers.GET("/search", middleware.RateLimitByIP(5, 20), handler.Search)
		workers.GET("/:id", middleware.RateLimitByIP(5, 20), handler.GetById)
		workers.POST("", middleware.RateLimitByIP(1, 5), handler.Create)
		workers.PATCH("/:id", middleware.RateLimitByIP(1, 5), handler.Update)
		workers.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
