package routes

import (
	"net/http"

	"yardwork_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP-маршруты приложения
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Posting.RegisterRoutes(api)
		appHandlers.Bid.RegisterRoutes(api)
		appHandlers.Review.RegisterRoutes(api)
		appHandlers.Notification.RegisterRoutes(api)
	}
}
