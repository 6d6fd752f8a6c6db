package models

import (
	"time"

	"gorm.io/gorm"
)

// RSVP statuses for event participants.
const (
	RSVPPending  = "pending"
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
)

// Event is a dated school event (sports day, parent meeting, trip).
type Event struct {
	gorm.Model
	SchoolID    uint      `json:"schoolId" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" gorm:"index;not null"`
	Location    string    `json:"location"`

	RSVPs []EventRSVP `json:"rsvps,omitempty" gorm:"foreignKey:EventID"`
}

// EventRSVP tracks a user's response to an event invitation.
type EventRSVP struct {
	gorm.Model
	EventID uint   `json:"eventId" gorm:"uniqueIndex:idx_rsvp_event_user;not null"`
	UserID  uint   `json:"userId" gorm:"uniqueIndex:idx_rsvp_event_user;not null"`
	Status  string `json:"status" gorm:"size:10;not null;default:pending"`
}
