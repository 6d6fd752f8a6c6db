package models

import "gorm.io/gorm"

// Class groups students within a grade. Name is unique per school.
type Class struct {
	gorm.Model
	SchoolID     uint   `json:"schoolId" gorm:"uniqueIndex:idx_class_school_name;not null"`
	Name         string `json:"name" gorm:"uniqueIndex:idx_class_school_name;size:50;not null"`
	Capacity     int    `json:"capacity" gorm:"not null"`
	GradeID      uint   `json:"gradeId" gorm:"index;not null"`
	SupervisorID *uint  `json:"supervisorId" gorm:"index"`

	School     *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Grade      *Grade  `json:"grade,omitempty" gorm:"foreignKey:GradeID"`
	Supervisor *User   `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID"`
}

// ClassInput binds the create/update request body for a class.
type ClassInput struct {
	Name         string `json:"name" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	SchoolID     uint   `json:"schoolId" binding:"required"`
	GradeID      uint   `json:"gradeId" binding:"required"`
	SupervisorID *uint  `json:"supervisorId"`
}

// ClassResponse is the list/detail view of a class.
type ClassResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	SchoolID     uint   `json:"schoolId"`
	GradeID      uint   `json:"gradeId"`
	GradeName    string `json:"gradeName,omitempty"`
	SupervisorID *uint  `json:"supervisorId,omitempty"`
	Supervisor   string `json:"supervisor,omitempty"`
	StudentCount int    `json:"studentCount"`
}
