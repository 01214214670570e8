package course

import (
	"github.com/pandiaraajan-hub/workerprolite/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	courses := r.Group("/courses")
	courses.Use(middleware.ContextLogger(logger))
	{
		courses.GET("", middleware.RateLimitByIP(5, 20), handler.GetAll)
		courses.GET("/options", middleware.RateLimitByIP(10, 30), handler.GetOptions)
		courses.POST("", middleware.RateLimitByIP(1, 5), handler.Create)
		courses.PATCH("/:id", middleware.RateLimitByIP(1, 5), handler.Update)
		courses.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
