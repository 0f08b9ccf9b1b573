package api

import (
	"net/http"

	"taskmanager-backend/internal/auth/delivery"
	authUsecase "taskmanager-backend/internal/auth/usecase"
	taskDelivery "taskmanager-backend/internal/task/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, taskHandler *taskDelivery.TaskHandler) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Running")
	})

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
			users.PUT("/profile", delivery.AuthMiddleware(authUsecase), authHandler.UpdateProfile)
			users.POST("/avatar", delivery.AuthMiddleware(authUsecase), authHandler.UpdateAvatar)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(authUsecase))
		taskHandler.RegisterRoutes(tasks)
	}
}
