package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/PascalSeth/Edutrack-backend-sub005/internal/handlers"
	"github.com/PascalSeth/Edutrack-backend-sub005/internal/middleware"
	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// registerAPIRoutes wires the administrative endpoints.
func registerAPIRoutes(rg *gin.RouterGroup, h *handlers.Handler) {
	api := rg.Group("/api/v1")
	api.Use(middleware.RequireRole(models.RoleAdmin))
	{
		classes := api.Group("/classes")
		{
			classes.GET("", h.ListClasses)
			classes.POST("", h.CreateClass)
			classes.GET("/:id", h.GetClass)
			classes.PUT("/:id", h.UpdateClass)
			classes.DELETE("/:id", h.DeleteClass)
			classes.GET("/:id/attendance/export", h.ExportClassAttendance)
		}
	}
}
