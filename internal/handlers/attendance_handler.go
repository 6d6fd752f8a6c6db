package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

const dateLayout = "2006-01-02"

// GetStudentAttendance returns attendance records and a tally for a window
// selected either by filterType (week|month|term) or by an explicit
// startDate/endDate pair. An explicit range wins over filterType.
func (h *Handler) GetStudentAttendance(c *gin.Context) {
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

	start, end, err := h.resolveAttendanceWindow(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Term not found")
			return
		}
		var infra *windowLookupError
		if errors.As(err, &infra) {
			h.serverError(c, "attendance window resolution failed", infra.err)
			return
		}
		badRequest(c, "Invalid attendance filter", err)
		return
	}

	var rows []models.Attendance
	if err := h.db.
		Preload("Lesson.Subject").
		Where("student_id = ? AND date >= ? AND date <= ?", studentID, start, end).
		Order("date asc").
		Find(&rows).Error; err != nil {
		h.serverError(c, "attendance query failed", err)
		return
	}

	summary := summarizeAttendance(rows, start, end)
	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance retrieved successfully",
		"attendance": summary,
	})
}

// resolveAttendanceWindow computes the [start, end] date range for the
// request. Defaults to the current month when nothing is specified.
func (h *Handler) resolveAttendanceWindow(c *gin.Context) (time.Time, time.Time, error) {
	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr != "" || endStr != "" {
		if startStr == "" || endStr == "" {
			return time.Time{}, time.Time{}, errors.New("startDate and endDate must be provided together")
		}
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, errors.New("endDate is before startDate")
		}
		return start, end, nil
	}

	now := time.Now().Truncate(24 * time.Hour)
	switch filter := c.Query("filterType"); filter {
	case "", "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1), nil
	case "week":
		// Week starts on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		start := now.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6), nil
	case "term":
		termID, err := strconv.Atoi(c.Query("termId"))
		if err != nil || termID <= 0 {
			return time.Time{}, time.Time{}, errors.New("termId is required when filterType is term")
		}
		var term models.Term
		if err := h.db.First(&term, termID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return time.Time{}, time.Time{}, err
			}
			return time.Time{}, time.Time{}, &windowLookupError{err}
		}
		return term.StartDate, term.EndDate, nil
	default:
		return time.Time{}, time.Time{}, errors.New("filterType must be week, month or term")
	}
}

// windowLookupError marks a database failure during window resolution, so
// the caller answers 500 rather than blaming the filter.
type windowLookupError struct{ err error }

func (e *windowLookupError) Error() string { return e.err.Error() }
func (e *windowLookupError) Unwrap() error { return e.err }

// summarizeAttendance tallies the rows and computes the attendance rate as
// presentDays/totalDays*100 rounded to two decimals. An empty window yields
// 0.00 rather than a division error.
func summarizeAttendance(rows []models.Attendance, start, end time.Time) models.AttendanceSummary {
	summary := models.AttendanceSummary{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Records:   make([]models.AttendanceRecord, 0, len(rows)),
	}

	for _, row := range rows {
		record := models.AttendanceRecord{
			Date:   row.Date.Format(dateLayout),
			Status: row.Status,
		}
		if row.Lesson != nil && row.Lesson.Subject != nil {
			record.Subject = row.Lesson.Subject.Name
		}
		summary.Records = append(summary.Records, record)

		summary.TotalDays++
		switch row.Status {
		case models.AttendancePresent:
			summary.PresentDays++
		case models.AttendanceLate:
			summary.LateDays++
		case models.AttendanceAbsent:
			summary.AbsentDays++
		}
	}

	if summary.TotalDays > 0 {
		rate := float64(summary.PresentDays) / float64(summary.TotalDays) * 100
		summary.Rate = math.Round(rate*100) / 100
	}
	return summary
}
