package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// ListClasses returns classes with grade, supervisor and student count.
// Paginated by default; `?all=true` returns the full list for dropdowns.
func (h *Handler) ListClasses(c *gin.Context) {
	query := h.db.Table("classes").
		Select(`classes.id, classes.name, classes.capacity, classes.school_id, classes.grade_id,
			classes.supervisor_id,
			grades.name as grade_name,
			COALESCE(users.first_name || ' ' || users.last_name, '') as supervisor,
			(SELECT COUNT(*) FROM students
				WHERE students.class_id = classes.id AND students.deleted_at IS NULL) as student_count`).
		Joins("LEFT JOIN grades ON grades.id = classes.grade_id").
		Joins("LEFT JOIN users ON users.id = classes.supervisor_id").
		Where("classes.deleted_at IS NULL").
		Order("classes.name asc")

	// The count must see the same filters as the page query.
	countQuery := h.db.Model(&models.Class{})

	if schoolID := c.Query("schoolId"); schoolID != "" {
		id, err := strconv.Atoi(schoolID)
		if err != nil {
			badRequest(c, "schoolId must be numeric", err)
			return
		}
		query = query.Where("classes.school_id = ?", id)
		countQuery = countQuery.Where("school_id = ?", id)
	}

	var classes []models.ClassResponse
	if c.Query("all") == "true" {
		if err := query.Scan(&classes).Error; err != nil {
			h.serverError(c, "class list query failed", err)
			return
		}
		if classes == nil {
			classes = make([]models.ClassResponse, 0)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Classes retrieved successfully", "classes": classes})
		return
	}

	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		h.serverError(c, "class count query failed", err)
		return
	}
	if err := query.Scopes(Paginate(c)).Scan(&classes).Error; err != nil {
		h.serverError(c, "class list query failed", err)
		return
	}
	if classes == nil {
		classes = make([]models.ClassResponse, 0)
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(c, classes, totalRows))
}

// GetClass returns one class by id.
func (h *Handler) GetClass(c *gin.Context) {
	id := c.Param("id")

	var class models.Class
	if err := h.db.Preload("Grade").Preload("Supervisor").First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Class not found")
			return
		}
		h.serverError(c, "class lookup failed", err)
		return
	}

	var studentCount int64
	if err := h.db.Model(&models.Student{}).Where("class_id = ?", class.ID).Count(&studentCount).Error; err != nil {
		h.serverError(c, "class student count failed", err)
		return
	}

	view := models.ClassResponse{
		ID:           class.ID,
		Name:         class.Name,
		Capacity:     class.Capacity,
		SchoolID:     class.SchoolID,
		GradeID:      class.GradeID,
		SupervisorID: class.SupervisorID,
		StudentCount: int(studentCount),
	}
	if class.Grade != nil {
		view.GradeName = class.Grade.Name
	}
	if class.Supervisor != nil {
		view.Supervisor = class.Supervisor.FullName()
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class retrieved successfully", "class": view})
}

// CreateClass validates the body, verifies that the referenced school, grade
// and supervisor exist, then writes the row. Nothing is written when any
// referent is missing.
func (h *Handler) CreateClass(c *gin.Context) {
	var input models.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid class payload", err)
		return
	}

	if err := h.checkClassReferents(input); err != nil {
		var missing *missingReferentError
		if errors.As(err, &missing) {
			notFound(c, missing.Error())
			return
		}
		h.serverError(c, "class referent check failed", err)
		return
	}

	class := models.Class{
		SchoolID:     input.SchoolID,
		Name:         input.Name,
		Capacity:     input.Capacity,
		GradeID:      input.GradeID,
		SupervisorID: input.SupervisorID,
	}
	if err := h.db.Create(&class).Error; err != nil {
		h.serverError(c, "class create failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Class created successfully", "id": class.ID})
}

// UpdateClass applies the same validation as create, then updates the row.
func (h *Handler) UpdateClass(c *gin.Context) {
	id := c.Param("id")

	var input models.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid class payload", err)
		return
	}

	var class models.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Class not found")
			return
		}
		h.serverError(c, "class lookup failed", err)
		return
	}

	if err := h.checkClassReferents(input); err != nil {
		var missing *missingReferentError
		if errors.As(err, &missing) {
			notFound(c, missing.Error())
			return
		}
		h.serverError(c, "class referent check failed", err)
		return
	}

	class.Name = input.Name
	class.Capacity = input.Capacity
	class.SchoolID = input.SchoolID
	class.GradeID = input.GradeID
	class.SupervisorID = input.SupervisorID
	if err := h.db.Save(&class).Error; err != nil {
		h.serverError(c, "class update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class updated successfully"})
}

// DeleteClass removes a class unless students are still assigned to it.
func (h *Handler) DeleteClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "A valid class id is required", err)
		return
	}

	var studentCount int64
	if err := h.db.Model(&models.Student{}).Where("class_id = ?", id).Count(&studentCount).Error; err != nil {
		h.serverError(c, "class student count failed", err)
		return
	}
	if studentCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("Cannot delete class: %d students are still assigned to it", studentCount),
		})
		return
	}

	result := h.db.Delete(&models.Class{}, id)
	if result.Error != nil {
		h.serverError(c, "class delete failed", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		notFound(c, "Class not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class deleted successfully"})
}

type missingReferentError struct{ what string }

func (e *missingReferentError) Error() string { return e.what + " not found" }

// checkClassReferents verifies the school, grade and supervisor rows exist.
// The three lookups are independent, so they run concurrently.
func (h *Handler) checkClassReferents(input models.ClassInput) error {
	type check struct {
		what string
		run  func() (int64, error)
	}

	checks := []check{
		{what: "School", run: func() (int64, error) {
			var n int64
			err := h.db.Model(&models.School{}).Where("id = ?", input.SchoolID).Count(&n).Error
			return n, err
		}},
		{what: "Grade", run: func() (int64, error) {
			var n int64
			err := h.db.Model(&models.Grade{}).Where("id = ?", input.GradeID).Count(&n).Error
			return n, err
		}},
	}
	if input.SupervisorID != nil {
		checks = append(checks, check{what: "Supervisor", run: func() (int64, error) {
			var n int64
			err := h.db.Model(&models.User{}).
				Where("id = ? AND role = ?", *input.SupervisorID, models.RoleTeacher).
				Count(&n).Error
			return n, err
		}})
	}

	errs := make([]error, len(checks))
	var wg sync.WaitGroup
	for i, ck := range checks {
		wg.Add(1)
		go func(i int, ck check) {
			defer wg.Done()
			n, err := ck.run()
			if err != nil {
				errs[i] = err
				return
			}
			if n == 0 {
				errs[i] = &missingReferentError{ck.what}
			}
		}(i, ck)
	}
	wg.Wait()

	// Report a missing referent ahead of infrastructure errors so callers
	// get the more actionable message.
	var infra error
	for _, err := range errs {
		if err == nil {
			continue
		}
		var missing *missingReferentError
		if errors.As(err, &missing) {
			return err
		}
		if infra == nil {
			infra = err
		}
	}
	return infra
}
