package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// ListNotifications returns the caller's notifications, unread first, newest
// within each group.
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	if err := h.db.
		Where("user_id = ?", userID).
		Order("read asc, created_at desc").
		Scopes(Paginate(c)).
		Find(&notifications).Error; err != nil {
		h.serverError(c, "notification list query failed", err)
		return
	}

	var unread int64
	if err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread).Error; err != nil {
		h.serverError(c, "unread count query failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Notifications retrieved successfully",
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead flips the read flag on one of the caller's
// notifications.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "A valid notification id is required", err)
		return
	}

	result := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		h.serverError(c, "notification update failed", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		notFound(c, "Notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// ListAnnouncements returns the school's unexpired announcements visible to
// the caller's role.
func (h *Handler) ListAnnouncements(c *gin.Context) {
	schoolID := c.GetUint("school_id")
	role := c.GetString("role")

	var announcements []models.Announcement
	if err := h.db.
		Where("school_id = ?", schoolID).
		Where("audience = '' OR audience = ?", role).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at desc").
		Scopes(Paginate(c)).
		Find(&announcements).Error; err != nil {
		h.serverError(c, "announcement list query failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Announcements retrieved successfully",
		"announcements": announcements,
	})
}
