package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleAdmin     = "admin"
	RolePrincipal = "principal"
	RoleTeacher   = "teacher"
	RoleParent    = "parent"
)

// Approval workflow statuses shared by teacher, principal, exam question,
// result and assignment records. No transition rules are enforced; the value
// is set directly by writes.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// User is any authenticated person: admin, principal, teacher or parent.
type User struct {
	gorm.Model
	SchoolID       uint       `json:"schoolId" gorm:"index;not null"`
	Role           string     `json:"role" gorm:"size:20;not null;index"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Password       string     `json:"-" gorm:"not null"`
	FirstName      string     `json:"firstName" gorm:"not null"`
	LastName       string     `json:"lastName" gorm:"not null"`
	Phone          string     `json:"phone"`
	PhotoURL       string     `json:"photoUrl"`
	BirthDate      *time.Time `json:"birthDate"`
	ApprovalStatus string     `json:"approvalStatus" gorm:"size:20;default:pending"`

	School *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserResponse is the profile view returned to the mobile app.
type UserResponse struct {
	ID        uint   `json:"id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	PhotoURL  string `json:"photoUrl"`
	SchoolID  uint   `json:"schoolId"`
}

// ToResponse maps a User row onto its API view.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Role:      u.Role,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		PhotoURL:  u.PhotoURL,
		SchoolID:  u.SchoolID,
	}
}
