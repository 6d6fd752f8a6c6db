package models

import (
	"time"

	"gorm.io/gorm"
)

// Exam is a scheduled examination for a class and subject.
type Exam struct {
	gorm.Model
	SchoolID    uint      `json:"schoolId" gorm:"index;not null"`
	ClassID     uint      `json:"classId" gorm:"index;not null"`
	SubjectID   uint      `json:"subjectId" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" gorm:"index;not null"`
	TotalMarks  float64   `json:"totalMarks"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// ExamQuestion is one question on an exam, subject to the approval workflow.
type ExamQuestion struct {
	gorm.Model
	ExamID         uint    `json:"examId" gorm:"index;not null"`
	Text           string  `json:"text" gorm:"not null"`
	Marks          float64 `json:"marks"`
	ApprovalStatus string  `json:"approvalStatus" gorm:"size:20;default:pending"`
}

// Result is a student's score on an exam, subject to the approval workflow.
type Result struct {
	gorm.Model
	ExamID         uint    `json:"examId" gorm:"uniqueIndex:idx_result_exam_student;not null"`
	StudentID      uint    `json:"studentId" gorm:"uniqueIndex:idx_result_exam_student;not null"`
	Score          float64 `json:"score"`
	ApprovalStatus string  `json:"approvalStatus" gorm:"size:20;default:pending"`
}
