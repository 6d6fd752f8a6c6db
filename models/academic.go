package models

import (
	"time"

	"gorm.io/gorm"
)

// Grade is a level in the academic structure (e.g. "Grade 7").
type Grade struct {
	gorm.Model
	SchoolID uint   `json:"schoolId" gorm:"uniqueIndex:idx_grade_school_name;not null"`
	Name     string `json:"name" gorm:"uniqueIndex:idx_grade_school_name;size:50;not null"`
	Level    int    `json:"level" gorm:"not null"`
}

// Subject is a taught discipline, unique per school by name.
type Subject struct {
	gorm.Model
	SchoolID uint   `json:"schoolId" gorm:"uniqueIndex:idx_subject_school_name;not null"`
	Name     string `json:"name" gorm:"uniqueIndex:idx_subject_school_name;size:100;not null"`
}

// Lesson is a recurring teaching unit: one subject taught to one class by one
// teacher. Attendance rows hang off lessons.
type Lesson struct {
	gorm.Model
	SchoolID  uint   `json:"schoolId" gorm:"index;not null"`
	ClassID   uint   `json:"classId" gorm:"index;not null"`
	SubjectID uint   `json:"subjectId" gorm:"index;not null"`
	TeacherID uint   `json:"teacherId" gorm:"index;not null"`
	Day       string `json:"day" gorm:"size:10"`
	StartTime string `json:"startTime" gorm:"size:5"`
	EndTime   string `json:"endTime" gorm:"size:5"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher *User    `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

// Term bounds a named period of the academic year. Attendance lookups with
// filterType=term resolve their window from this table.
type Term struct {
	gorm.Model
	SchoolID  uint      `json:"schoolId" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`
}

// Holiday is an academic-calendar entry with no other backing entity.
type Holiday struct {
	gorm.Model
	SchoolID    uint      `json:"schoolId" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"index;not null"`
	Description string    `json:"description"`
}
