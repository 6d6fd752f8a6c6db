package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// GetAcademicCalendar merges exams, holidays, events and assignment due
// dates into one date-sorted list. The `types` query parameter (CSV) selects
// a subset of sources; by default all four are included.
func (h *Handler) GetAcademicCalendar(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		badRequest(c, "A valid startDate (YYYY-MM-DD) is required", err)
		return
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		badRequest(c, "A valid endDate (YYYY-MM-DD) is required", err)
		return
	}
	if end.Before(start) {
		badRequest(c, "endDate must not be before startDate", nil)
		return
	}

	wanted, err := parseCalendarTypes(c.Query("types"))
	if err != nil {
		badRequest(c, "Invalid types parameter", err)
		return
	}

	schoolID := c.GetUint("school_id")
	entries := make([]models.CalendarEntry, 0)

	if wanted[models.CalendarExam] {
		var exams []models.Exam
		if err := h.db.Where("school_id = ? AND date >= ? AND date <= ?", schoolID, start, end).Find(&exams).Error; err != nil {
			h.serverError(c, "exam calendar query failed", err)
			return
		}
		for _, e := range exams {
			entries = append(entries, models.CalendarEntry{
				ID:          e.ID,
				Title:       e.Title,
				Date:        e.Date.Format(dateLayout),
				Description: e.Description,
				Type:        models.CalendarExam,
			})
		}
	}

	if wanted[models.CalendarHoliday] {
		var holidays []models.Holiday
		if err := h.db.Where("school_id = ? AND date >= ? AND date <= ?", schoolID, start, end).Find(&holidays).Error; err != nil {
			h.serverError(c, "holiday calendar query failed", err)
			return
		}
		for _, hd := range holidays {
			entries = append(entries, models.CalendarEntry{
				ID:          hd.ID,
				Title:       hd.Name,
				Date:        hd.Date.Format(dateLayout),
				Description: hd.Description,
				Type:        models.CalendarHoliday,
			})
		}
	}

	if wanted[models.CalendarEvent] {
		var events []models.Event
		if err := h.db.Where("school_id = ? AND date >= ? AND date <= ?", schoolID, start, end).Find(&events).Error; err != nil {
			h.serverError(c, "event calendar query failed", err)
			return
		}
		for _, e := range events {
			entries = append(entries, models.CalendarEntry{
				ID:          e.ID,
				Title:       e.Title,
				Date:        e.Date.Format(dateLayout),
				Description: e.Description,
				Type:        models.CalendarEvent,
			})
		}
	}

	if wanted[models.CalendarAssignment] {
		var assignments []models.Assignment
		if err := h.db.Where("school_id = ? AND due_date >= ? AND due_date <= ?", schoolID, start, end).Find(&assignments).Error; err != nil {
			h.serverError(c, "assignment calendar query failed", err)
			return
		}
		for _, a := range assignments {
			entries = append(entries, models.CalendarEntry{
				ID:          a.ID,
				Title:       a.Title,
				Date:        a.DueDate.Format(dateLayout),
				Description: a.Description,
				Type:        models.CalendarAssignment,
			})
		}
	}

	// Dates are "YYYY-MM-DD", so string order is date order.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Title < entries[j].Title
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Calendar retrieved successfully",
		"calendar": entries,
	})
}

var validCalendarTypes = map[string]bool{
	models.CalendarExam:       true,
	models.CalendarHoliday:    true,
	models.CalendarEvent:      true,
	models.CalendarAssignment: true,
}

// parseCalendarTypes turns the CSV `types` value into a lookup set. An empty
// value selects every type.
func parseCalendarTypes(raw string) (map[string]bool, error) {
	wanted := make(map[string]bool, len(validCalendarTypes))
	if raw == "" {
		for t := range validCalendarTypes {
			wanted[t] = true
		}
		return wanted, nil
	}
	for _, part := range strings.Split(raw, ",") {
		t := strings.TrimSpace(part)
		if !validCalendarTypes[t] {
			return nil, &unknownTypeError{t}
		}
		wanted[t] = true
	}
	return wanted, nil
}

type unknownTypeError struct{ t string }

func (e *unknownTypeError) Error() string {
	return "unknown calendar type: " + e.t
}
