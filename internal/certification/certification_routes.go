package certification

import (
	"github.com/pandiaraajan-hub/workerprolite/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	certs := r.Group("/certifications")
	certs.Use(middleware.ContextLogger(logger))
	{
		certs.GET("", middleware.RateLimitByIP(5, 20), handler.GetAll)
		certs.GET("/expiring/:days", middleware.RateLimitByIP(5, 20), handler.GetExpiring)
		certs.POST("", middleware.RateLimitByIP(1, 5), handler.Create)
		certs.PATCH("/:id", middleware.RateLimitByIP(1, 5), handler.Update)
		certs.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
