package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment is work set for a class, due on DueDate.
type Assignment struct {
	gorm.Model
	SchoolID       uint      `json:"schoolId" gorm:"index;not null"`
	ClassID        uint      `json:"classId" gorm:"index;not null"`
	SubjectID      uint      `json:"subjectId" gorm:"index;not null"`
	TeacherID      uint      `json:"teacherId" gorm:"index;not null"`
	Title          string    `json:"title" gorm:"not null"`
	Description    string    `json:"description"`
	DueDate        time.Time `json:"dueDate" gorm:"index;not null"`
	ApprovalStatus string    `json:"approvalStatus" gorm:"size:20;default:pending"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// AssignmentSubmission is a student's response to an assignment.
type AssignmentSubmission struct {
	gorm.Model
	AssignmentID uint       `json:"assignmentId" gorm:"uniqueIndex:idx_sub_assignment_student;not null"`
	StudentID    uint       `json:"studentId" gorm:"uniqueIndex:idx_sub_assignment_student;not null"`
	SubmittedAt  *time.Time `json:"submittedAt"`
	Grade        *float64   `json:"grade"`
	Feedback     string     `json:"feedback"`
}
