package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// ExportClassAttendance streams an XLSX attendance register for one class
// and month (`month=YYYY-MM`, defaults to the current month). One row per
// student, one column per day, cells P/A/L.
func (h *Handler) ExportClassAttendance(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "A valid class id is required", err)
		return
	}

	var class models.Class
	if err := h.db.First(&class, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Class not found")
			return
		}
		h.serverError(c, "class lookup failed", err)
		return
	}

	monthStart := time.Now()
	if raw := c.Query("month"); raw != "" {
		monthStart, err = time.Parse("2006-01", raw)
		if err != nil {
			badRequest(c, "month must be in YYYY-MM format", err)
			return
		}
	}
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	daysInMonth := monthEnd.Day()

	var students []models.Student
	if err := h.db.
		Where("class_id = ?", classID).
		Order("last_name asc, first_name asc").
		Find(&students).Error; err != nil {
		h.serverError(c, "student query failed", err)
		return
	}

	var rows []models.Attendance
	if err := h.db.
		Where("date >= ? AND date <= ?", monthStart, monthEnd).
		Where("student_id IN (?)", h.db.Model(&models.Student{}).Select("id").Where("class_id = ?", classID)).
		Find(&rows).Error; err != nil {
		h.serverError(c, "attendance query failed", err)
		return
	}

	// statusByStudentDay[studentID][dayOfMonth] -> single-letter status
	statusByStudentDay := make(map[uint]map[int]string)
	for _, row := range rows {
		day := row.Date.Day()
		if statusByStudentDay[row.StudentID] == nil {
			statusByStudentDay[row.StudentID] = make(map[int]string)
		}
		statusByStudentDay[row.StudentID][day] = statusLetter(row.Status)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "Student")
	for day := 1; day <= daysInMonth; day++ {
		cell, _ := excelize.CoordinatesToCellName(day+1, 1)
		f.SetCellValue(sheet, cell, day)
	}

	for i, student := range students {
		rowIdx := i + 2
		nameCell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		f.SetCellValue(sheet, nameCell, student.LastName+" "+student.FirstName)
		for day, letter := range statusByStudentDay[student.ID] {
			cell, _ := excelize.CoordinatesToCellName(day+1, rowIdx)
			f.SetCellValue(sheet, cell, letter)
		}
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", class.Name, monthStart.Format("2006-01"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.log.Error("failed to stream attendance export", "error", err)
	}
}

func statusLetter(status string) string {
	switch status {
	case models.AttendancePresent:
		return "P"
	case models.AttendanceAbsent:
		return "A"
	case models.AttendanceLate:
		return "L"
	default:
		return "?"
	}
}
