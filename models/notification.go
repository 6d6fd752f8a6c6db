package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a per-user message shown in the app's notification tray.
type Notification struct {
	gorm.Model
	SchoolID uint   `json:"schoolId" gorm:"index;not null"`
	UserID   uint   `json:"userId" gorm:"index;not null"`
	Title    string `json:"title" gorm:"not null"`
	Body     string `json:"body"`
	Read     bool   `json:"read" gorm:"default:false;index"`
}

// Announcement is a school-wide notice, optionally restricted to one role.
type Announcement struct {
	gorm.Model
	SchoolID  uint       `json:"schoolId" gorm:"index;not null"`
	Title     string     `json:"title" gorm:"not null"`
	Body      string     `json:"body"`
	Audience  string     `json:"audience" gorm:"size:20"` // empty means everyone
	ExpiresAt *time.Time `json:"expiresAt"`
}
