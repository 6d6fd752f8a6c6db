package models

import (
	"time"

	"gorm.io/gorm"
)

// Student belongs to a school and optionally to a class. ParentID links the
// student to the parent User account used by the mobile app.
type Student struct {
	gorm.Model
	SchoolID  uint       `json:"schoolId" gorm:"index;not null"`
	ClassID   *uint      `json:"classId" gorm:"index"`
	ParentID  *uint      `json:"parentId" gorm:"index"`
	FirstName string     `json:"firstName" gorm:"not null"`
	LastName  string     `json:"lastName" gorm:"not null"`
	Gender    string     `json:"gender" gorm:"size:10"`
	BirthDate *time.Time `json:"birthDate"`
	PhotoURL  string     `json:"photoUrl"`

	School *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Class  *Class  `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Parent *User   `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
}

// Age derives the student's age in whole years at the given instant.
// Students without a recorded birth date report 0.
func (s Student) Age(now time.Time) int {
	if s.BirthDate == nil {
		return 0
	}
	age := now.Year() - s.BirthDate.Year()
	if now.Month() < s.BirthDate.Month() ||
		(now.Month() == s.BirthDate.Month() && now.Day() < s.BirthDate.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// StudentResponse is the child view returned to parents.
type StudentResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Age       int    `json:"age"`
	PhotoURL  string `json:"photoUrl"`
	ClassName string `json:"className,omitempty"`
	GradeName string `json:"gradeName,omitempty"`
}
