package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/PascalSeth/Edutrack-backend-sub005/internal/handlers"
	"github.com/PascalSeth/Edutrack-backend-sub005/internal/middleware"
	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// registerMobileRoutes wires the parent mobile app endpoints.
func registerMobileRoutes(rg *gin.RouterGroup, h *handlers.Handler, hub *handlers.Hub) {
	mobile := rg.Group("/mobile")
	{
		mobile.GET("/students/:studentId/timetable", h.GetStudentTimetable)
		mobile.GET("/students/:studentId/attendance", h.GetStudentAttendance)
		mobile.GET("/calendar", h.GetAcademicCalendar)

		parent := mobile.Group("/parent")
		parent.Use(middleware.RequireRole(models.RoleParent))
		{
			parent.GET("/home", h.GetParentHome)
			parent.GET("/children", h.GetChildren)
			parent.GET("/profile", h.GetParentProfile)
			parent.PUT("/profile", h.UpdateProfile)
		}

		mobile.GET("/notifications", h.ListNotifications)
		mobile.POST("/notifications/:id/read", h.MarkNotificationRead)
		mobile.GET("/announcements", h.ListAnnouncements)

		mobile.POST("/chats", h.OpenChat)
		mobile.GET("/chats/:id/messages", h.ListChatMessages)
		mobile.GET("/chats/ws", hub.ServeWS)
	}
}
