package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// GetChildren lists the authenticated parent's students with class and grade
// names and a derived age.
func (h *Handler) GetChildren(c *gin.Context) {
	userID := c.GetUint("user_id")

	var children []models.Student
	if err := h.db.
		Preload("Class").
		Preload("Class.Grade").
		Where("parent_id = ?", userID).
		Order("first_name asc").
		Find(&children).Error; err != nil {
		h.serverError(c, "children lookup failed", err)
		return
	}

	now := time.Now()
	views := make([]models.StudentResponse, 0, len(children))
	for _, child := range children {
		views = append(views, childView(child, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Children retrieved successfully",
		"children": views,
	})
}

// GetParentProfile returns the onboarding profile: the parent's own details
// plus a children summary and the school name.
func (h *Handler) GetParentProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var parent models.User
	if err := h.db.Preload("School").First(&parent, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Parent profile not found")
			return
		}
		h.serverError(c, "parent lookup failed", err)
		return
	}

	var children []models.Student
	if err := h.db.
		Preload("Class").
		Preload("Class.Grade").
		Where("parent_id = ?", userID).
		Find(&children).Error; err != nil {
		h.serverError(c, "children lookup failed", err)
		return
	}

	now := time.Now()
	views := make([]models.StudentResponse, 0, len(children))
	for _, child := range children {
		views = append(views, childView(child, now))
	}

	profile := gin.H{
		"user":     parent.ToResponse(),
		"children": views,
	}
	if parent.School != nil {
		profile["schoolName"] = parent.School.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"profile": profile,
	})
}
