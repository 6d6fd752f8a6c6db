package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// weekOrder fixes the day ordering of timetable responses.
var weekOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// GetStudentTimetable returns the currently effective timetable for the
// student's class, grouped by day with slots sorted by start time. Optional
// query filters: day, startTime, endTime, subjectId, teacherId.
func (h *Handler) GetStudentTimetable(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("studentId"))
	if err != nil || studentID <= 0 {
		badRequest(c, "A valid studentId is required", err)
		return
	}

	var student models.Student
	if err := h.db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Student not found")
			return
		}
		h.serverError(c, "student lookup failed", err)
		return
	}

	if student.ClassID == nil {
		notFound(c, "Student is not assigned to a class")
		return
	}

	today := time.Now()
	var timetable models.Timetable
	err = h.db.
		Where("class_id = ? AND is_active = ?", *student.ClassID, true).
		Where("effective_from <= ? AND effective_to >= ?", today, today).
		First(&timetable).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "No active timetable found for the student's class")
			return
		}
		h.serverError(c, "timetable lookup failed", err)
		return
	}

	query := h.db.
		Preload("Subject").
		Preload("Teacher").
		Where("timetable_id = ?", timetable.ID).
		Order("start_time asc")

	if day := c.Query("day"); day != "" {
		query = query.Where("day = ?", day)
	}
	if start := c.Query("startTime"); start != "" {
		query = query.Where("start_time >= ?", start)
	}
	if end := c.Query("endTime"); end != "" {
		query = query.Where("end_time <= ?", end)
	}
	if subjectID := c.Query("subjectId"); subjectID != "" {
		id, err := strconv.Atoi(subjectID)
		if err != nil {
			badRequest(c, "subjectId must be numeric", err)
			return
		}
		query = query.Where("subject_id = ?", id)
	}
	if teacherID := c.Query("teacherId"); teacherID != "" {
		id, err := strconv.Atoi(teacherID)
		if err != nil {
			badRequest(c, "teacherId must be numeric", err)
			return
		}
		query = query.Where("teacher_id = ?", id)
	}

	var slots []models.TimetableSlot
	if err := query.Find(&slots).Error; err != nil {
		h.serverError(c, "timetable slots query failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Timetable retrieved successfully",
		"timetable": groupSlotsByDay(slots),
	})
}

// groupSlotsByDay buckets slots into week-ordered days. Slots arrive sorted
// by start time, so per-day order is preserved. Days with no slots are
// omitted.
func groupSlotsByDay(slots []models.TimetableSlot) []models.TimetableDay {
	byDay := make(map[string][]models.SlotResponse, len(weekOrder))
	for _, slot := range slots {
		view := models.SlotResponse{
			ID:        slot.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Room:      slot.Room,
		}
		if slot.Subject != nil {
			view.Subject = slot.Subject.Name
		}
		if slot.Teacher != nil {
			view.Teacher = slot.Teacher.FullName()
		}
		byDay[slot.Day] = append(byDay[slot.Day], view)
	}

	days := make([]models.TimetableDay, 0, len(byDay))
	for _, day := range weekOrder {
		if daySlots, ok := byDay[day]; ok {
			days = append(days, models.TimetableDay{Day: day, Slots: daySlots})
		}
	}
	return days
}
