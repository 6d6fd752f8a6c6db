package handlers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// Fee statuses reported on the home screen. A failed fee calculation reports
// "unknown" instead of pretending the account is settled.
const (
	FeeStatusUpToDate    = "upToDate"
	FeeStatusOutstanding = "outstanding"
	FeeStatusUnknown     = "unknown"
)

// ChildDashboard is the per-child block of the parent home screen.
type ChildDashboard struct {
	models.StudentResponse
	AttendanceRate       float64          `json:"attendanceRate"`
	AssignmentCompletion float64          `json:"assignmentCompletion"`
	OutstandingFees      *decimal.Decimal `json:"outstandingFees,omitempty"`
	FeeStatus            string           `json:"feeStatus"`
}

// GetParentHome assembles the mobile home-screen dashboard: the parent's
// profile plus, for each child, a 30-day attendance rate, an
// assignment-completion percentage and the outstanding fee balance.
func (h *Handler) GetParentHome(c *gin.Context) {
	userID := c.GetUint("user_id")

	var parent models.User
	if err := h.db.First(&parent, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Parent profile not found")
			return
		}
		h.serverError(c, "parent lookup failed", err)
		return
	}

	var children []models.Student
	if err := h.db.
		Preload("Class").
		Preload("Class.Grade").
		Where("parent_id = ?", userID).
		Find(&children).Error; err != nil {
		h.serverError(c, "children lookup failed", err)
		return
	}

	now := time.Now()
	dashboards := make([]ChildDashboard, 0, len(children))
	for _, child := range children {
		dash := ChildDashboard{StudentResponse: childView(child, now)}

		rate, err := h.attendanceRate30d(child.ID, now)
		if err != nil {
			h.serverError(c, "attendance rate calculation failed", err)
			return
		}
		dash.AttendanceRate = rate

		completion, err := h.assignmentCompletion(child, now)
		if err != nil {
			h.serverError(c, "assignment completion calculation failed", err)
			return
		}
		dash.AssignmentCompletion = completion

		outstanding, err := h.outstandingFees(child, now)
		if err != nil {
			// Fee data is best-effort on the home screen, but a failure must
			// not masquerade as a settled account.
			h.log.Warn("fee calculation failed", "error", err, "student_id", child.ID)
			dash.FeeStatus = FeeStatusUnknown
		} else {
			dash.OutstandingFees = &outstanding
			if outstanding.IsPositive() {
				dash.FeeStatus = FeeStatusOutstanding
			} else {
				dash.FeeStatus = FeeStatusUpToDate
			}
		}

		dashboards = append(dashboards, dash)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Home screen data retrieved successfully",
		"home": gin.H{
			"parent":   parent.ToResponse(),
			"children": dashboards,
		},
	})
}

// attendanceRate30d computes the attendance rate over the trailing 30 days,
// rounded to two decimals. No records means 0.
func (h *Handler) attendanceRate30d(studentID uint, now time.Time) (float64, error) {
	since := now.AddDate(0, 0, -30)

	var counts struct {
		Total   int64
		Present int64
	}
	err := h.db.Model(&models.Attendance{}).
		Select("COUNT(*) as total, COUNT(CASE WHEN status = ? THEN 1 END) as present", models.AttendancePresent).
		Where("student_id = ? AND date >= ?", studentID, since).
		Scan(&counts).Error
	if err != nil {
		return 0, err
	}
	if counts.Total == 0 {
		return 0, nil
	}
	rate := float64(counts.Present) / float64(counts.Total) * 100
	return math.Round(rate*100) / 100, nil
}

// assignmentCompletion is the percentage of the class's due assignments the
// student has submitted. A student with nothing due scores 100.
func (h *Handler) assignmentCompletion(child models.Student, now time.Time) (float64, error) {
	if child.ClassID == nil {
		return 100, nil
	}

	var due int64
	if err := h.db.Model(&models.Assignment{}).
		Where("class_id = ? AND due_date <= ?", *child.ClassID, now).
		Count(&due).Error; err != nil {
		return 0, err
	}
	if due == 0 {
		return 100, nil
	}

	var submitted int64
	if err := h.db.Model(&models.AssignmentSubmission{}).
		Joins("JOIN assignments ON assignments.id = assignment_submissions.assignment_id").
		Where("assignment_submissions.student_id = ? AND assignment_submissions.submitted_at IS NOT NULL", child.ID).
		Where("assignments.class_id = ? AND assignments.due_date <= ?", *child.ClassID, now).
		Count(&submitted).Error; err != nil {
		return 0, err
	}

	pct := float64(submitted) / float64(due) * 100
	return math.Round(pct*100) / 100, nil
}

// outstandingFees totals what the student owes across active fee structures
// for their school and class: per line item the per-student override applies
// first (exemption skips the item, amount replaces it), recurring items are
// charged once per month elapsed in the structure period, one-time items
// once. Paid payments are then subtracted; the result never goes negative.
func (h *Handler) outstandingFees(child models.Student, now time.Time) (decimal.Decimal, error) {
	query := h.db.
		Preload("Items").
		Where("school_id = ? AND is_active = ?", child.SchoolID, true).
		Where("start_date <= ?", now)
	if child.ClassID != nil {
		query = query.Where("class_id IS NULL OR class_id = ?", *child.ClassID)
	} else {
		query = query.Where("class_id IS NULL")
	}

	var structures []models.FeeStructure
	if err := query.Find(&structures).Error; err != nil {
		return decimal.Zero, err
	}
	if len(structures) == 0 {
		return decimal.Zero, nil
	}

	structureIDs := make([]uint, 0, len(structures))
	itemIDs := make([]uint, 0)
	for _, s := range structures {
		structureIDs = append(structureIDs, s.ID)
		for _, item := range s.Items {
			itemIDs = append(itemIDs, item.ID)
		}
	}

	overrides := make(map[uint]models.StudentFeeOverride)
	if len(itemIDs) > 0 {
		var rows []models.StudentFeeOverride
		if err := h.db.
			Where("student_id = ? AND fee_item_id IN ?", child.ID, itemIDs).
			Find(&rows).Error; err != nil {
			return decimal.Zero, err
		}
		for _, o := range rows {
			overrides[o.FeeItemID] = o
		}
	}

	due := decimal.Zero
	for _, s := range structures {
		months := monthsElapsed(s.StartDate, minTime(now, s.EndDate))
		for _, item := range s.Items {
			amount := item.Amount
			if o, ok := overrides[item.ID]; ok {
				if o.Kind == models.OverrideExemption {
					continue
				}
				if o.Kind == models.OverrideAmount && o.Amount != nil {
					amount = *o.Amount
				}
			}
			if item.Frequency == models.FeeRecurring {
				due = due.Add(amount.Mul(decimal.NewFromInt(int64(months))))
			} else {
				due = due.Add(amount)
			}
		}
	}

	var paidRows []models.Payment
	if err := h.db.
		Where("student_id = ? AND status = ?", child.ID, models.PaymentPaid).
		Where("fee_structure_id IS NULL OR fee_structure_id IN ?", structureIDs).
		Find(&paidRows).Error; err != nil {
		return decimal.Zero, err
	}
	paid := decimal.Zero
	for _, p := range paidRows {
		paid = paid.Add(p.Amount)
	}

	outstanding := due.Sub(paid)
	if outstanding.IsNegative() {
		return decimal.Zero, nil
	}
	return outstanding, nil
}

// monthsElapsed counts calendar months from start through end inclusive.
// An end before start yields 0.
func monthsElapsed(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// childView maps a student row with preloaded class/grade onto the child
// response shape.
func childView(child models.Student, now time.Time) models.StudentResponse {
	view := models.StudentResponse{
		ID:        child.ID,
		FirstName: child.FirstName,
		LastName:  child.LastName,
		Gender:    child.Gender,
		Age:       child.Age(now),
		PhotoURL:  child.PhotoURL,
	}
	if child.Class != nil {
		view.ClassName = child.Class.Name
		if child.Class.Grade != nil {
			view.GradeName = child.Class.Grade.Name
		}
	}
	return view
}
