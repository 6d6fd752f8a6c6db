package models

import (
	"time"

	"gorm.io/gorm"
)

// Timetable is a dated revision of a class schedule. At most one timetable
// should be active for a class at a time; lookups pick the active one whose
// effective range contains today.
type Timetable struct {
	gorm.Model
	SchoolID      uint      `json:"schoolId" gorm:"index;not null"`
	ClassID       uint      `json:"classId" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"size:100"`
	IsActive      bool      `json:"isActive" gorm:"index"`
	EffectiveFrom time.Time `json:"effectiveFrom" gorm:"not null"`
	EffectiveTo   time.Time `json:"effectiveTo" gorm:"not null"`

	Slots []TimetableSlot `json:"slots,omitempty" gorm:"foreignKey:TimetableID"`
}

// TimetableSlot is one period in a timetable. StartTime/EndTime use "HH:MM"
// so lexicographic order matches chronological order.
type TimetableSlot struct {
	gorm.Model
	TimetableID uint   `json:"timetableId" gorm:"index;not null"`
	Day         string `json:"day" gorm:"size:10;not null"`
	StartTime   string `json:"startTime" gorm:"size:5;not null"`
	EndTime     string `json:"endTime" gorm:"size:5;not null"`
	SubjectID   uint   `json:"subjectId" gorm:"index;not null"`
	TeacherID   uint   `json:"teacherId" gorm:"index;not null"`
	Room        string `json:"room" gorm:"size:20"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher *User    `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

// SlotResponse is the per-period view inside a timetable day.
type SlotResponse struct {
	ID        uint   `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	Room      string `json:"room,omitempty"`
}

// TimetableDay groups the slots of one weekday.
type TimetableDay struct {
	Day   string         `json:"day"`
	Slots []SlotResponse `json:"slots"`
}
