package http

import (
	"github.com/M1estere/To-Do-API/internal/adapter/http/handlers"
	"github.com/M1estere/To-Do-API/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api. Extra middlewares run after language detection.
func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	taskEventsHandler *handlers.TaskEventsHandler,
	middlewares ...gin.HandlerFunc,
) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	api.Use(middlewares...)
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/events", taskEventsHandler.Subscribe)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.PATCH("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}
}
