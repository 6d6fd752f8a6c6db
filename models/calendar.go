package models

// Calendar entry types. Each maps to its own source table; the calendar
// endpoint merges them into one list.
const (
	CalendarExam       = "exam"
	CalendarHoliday    = "holiday"
	CalendarEvent      = "event"
	CalendarAssignment = "assignment"
)

// CalendarEntry is the normalized shape shared by all calendar sources.
type CalendarEntry struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // "2006-01-02"
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}
