package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// School is the tenant root. Every other entity carries a SchoolID; rows from
// different schools share one physical database.
type School struct {
	gorm.Model
	TenantID uuid.UUID `json:"tenantId" gorm:"type:uuid;uniqueIndex;not null"`
	Name     string    `json:"name" gorm:"uniqueIndex;not null"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
}

// BeforeCreate assigns the tenant identifier.
func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.TenantID == uuid.Nil {
		s.TenantID = uuid.New()
	}
	return nil
}
