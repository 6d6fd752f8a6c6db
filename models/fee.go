package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fee item frequencies.
const (
	FeeOneTime   = "oneTime"
	FeeRecurring = "recurring" // charged once per month within the structure period
)

// Fee override kinds.
const (
	OverrideExemption = "exemption"
	OverrideAmount    = "amount"
)

// Payment statuses.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// FeeStructure is a school's fee schedule for a period. ClassID narrows the
// structure to one class; nil applies it school-wide.
type FeeStructure struct {
	gorm.Model
	SchoolID  uint      `json:"schoolId" gorm:"index;not null"`
	ClassID   *uint     `json:"classId" gorm:"index"`
	Name      string    `json:"name" gorm:"not null"`
	IsActive  bool      `json:"isActive" gorm:"index"`
	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`

	Items []FeeBreakdownItem `json:"items,omitempty" gorm:"foreignKey:FeeStructureID"`
}

// FeeBreakdownItem is one line item of a fee structure.
type FeeBreakdownItem struct {
	gorm.Model
	FeeStructureID uint            `json:"feeStructureId" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"not null"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Frequency      string          `json:"frequency" gorm:"size:10;not null;default:oneTime"`
}

// StudentFeeOverride exempts a student from a line item or replaces its
// amount. One override per [item, student].
type StudentFeeOverride struct {
	gorm.Model
	FeeItemID uint             `json:"feeItemId" gorm:"uniqueIndex:idx_override_item_student;not null"`
	StudentID uint             `json:"studentId" gorm:"uniqueIndex:idx_override_item_student;not null"`
	Kind      string           `json:"kind" gorm:"size:10;not null"`
	Amount    *decimal.Decimal `json:"amount" gorm:"type:numeric(12,2)"`
}

// Payment records money received against a student's fees.
type Payment struct {
	gorm.Model
	SchoolID       uint            `json:"schoolId" gorm:"index;not null"`
	StudentID      uint            `json:"studentId" gorm:"index;not null"`
	FeeStructureID *uint           `json:"feeStructureId" gorm:"index"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status         string          `json:"status" gorm:"size:10;not null;default:pending"`
	PaidAt         *time.Time      `json:"paidAt"`
	Reference      string          `json:"reference" gorm:"size:64"`
}
