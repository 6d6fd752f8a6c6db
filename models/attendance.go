package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// Attendance records one student's presence for one lesson on one date.
// The [student, lesson, date] triple is unique.
type Attendance struct {
	gorm.Model
	SchoolID  uint      `json:"schoolId" gorm:"index;not null"`
	StudentID uint      `json:"studentId" gorm:"uniqueIndex:idx_att_student_lesson_date;not null"`
	LessonID  uint      `json:"lessonId" gorm:"uniqueIndex:idx_att_student_lesson_date;not null"`
	Date      time.Time `json:"date" gorm:"uniqueIndex:idx_att_student_lesson_date;not null"`
	Status    string    `json:"status" gorm:"size:10;not null"`

	Lesson *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
}

// AttendanceSummary is the aggregated view returned by the attendance lookup.
type AttendanceSummary struct {
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	TotalDays   int                `json:"totalDays"`
	PresentDays int                `json:"presentDays"`
	AbsentDays  int                `json:"absentDays"`
	LateDays    int                `json:"lateDays"`
	Rate        float64            `json:"attendanceRate"`
	Records     []AttendanceRecord `json:"records"`
}

// AttendanceRecord is one row in the attendance summary.
type AttendanceRecord struct {
	Date    string `json:"date"`
	Status  string `json:"status"`
	Subject string `json:"subject,omitempty"`
}
