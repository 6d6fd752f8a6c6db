package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

func seedCalendar(t *testing.T, e *testEnv) {
	t.Helper()
	require.NoError(t, e.DB.Create(&models.Exam{
		SchoolID: e.School.ID, ClassID: 1, SubjectID: 1,
		Title: "Maths Midterm", Date: date(2026, time.September, 20),
	}).Error)
	require.NoError(t, e.DB.Create(&models.Holiday{
		SchoolID: e.School.ID, Name: "Founders Day", Date: date(2026, time.September, 5),
	}).Error)
	require.NoError(t, e.DB.Create(&models.Event{
		SchoolID: e.School.ID, Title: "Sports Day", Date: date(2026, time.September, 12),
	}).Error)
	require.NoError(t, e.DB.Create(&models.Assignment{
		SchoolID: e.School.ID, ClassID: 1, SubjectID: 1, TeacherID: 1,
		Title: "Essay", DueDate: date(2026, time.September, 12),
	}).Error)
}

func TestGetAcademicCalendar_MissingDates(t *testing.T) {
	e := newTestEnv(t)
	r := e.router(identity{SchoolID: e.School.ID, Role: models.RoleParent})

	w := doRequest(t, r, http.MethodGet, "/mobile/calendar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/mobile/calendar?startDate=2026-09-30&endDate=2026-09-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAcademicCalendar_MergedSorted(t *testing.T) {
	e := newTestEnv(t)
	seedCalendar(t, e)
	r := e.router(identity{SchoolID: e.School.ID, Role: models.RoleParent})

	w := doRequest(t, r, http.MethodGet, "/mobile/calendar?startDate=2026-09-01&endDate=2026-09-30", nil)
	require.Equal(t, http.StatusOK, w.Code)

	entries := decodeBody(t, w)["calendar"].([]interface{})
	require.Len(t, entries, 4)

	var dates []string
	var types []string
	for _, raw := range entries {
		entry := raw.(map[string]interface{})
		dates = append(dates, entry["date"].(string))
		types = append(types, entry["type"].(string))
	}
	assert.Equal(t, []string{"2026-09-05", "2026-09-12", "2026-09-12", "2026-09-20"}, dates)
	assert.ElementsMatch(t, []string{"holiday", "event", "assignment", "exam"}, types)
	// Same-date entries tie-break on title.
	assert.Equal(t, "Essay", entries[1].(map[string]interface{})["title"])
	assert.Equal(t, "Sports Day", entries[2].(map[string]interface{})["title"])
}

func TestGetAcademicCalendar_TypeSubset(t *testing.T) {
	e := newTestEnv(t)
	seedCalendar(t, e)
	r := e.router(identity{SchoolID: e.School.ID, Role: models.RoleParent})

	w := doRequest(t, r, http.MethodGet, "/mobile/calendar?startDate=2026-09-01&endDate=2026-09-30&types=exam,holiday", nil)
	require.Equal(t, http.StatusOK, w.Code)

	entries := decodeBody(t, w)["calendar"].([]interface{})
	require.Len(t, entries, 2)
	for _, raw := range entries {
		kind := raw.(map[string]interface{})["type"].(string)
		assert.Contains(t, []string{"exam", "holiday"}, kind)
	}
}

func TestGetAcademicCalendar_UnknownType(t *testing.T) {
	e := newTestEnv(t)
	r := e.router(identity{SchoolID: e.School.ID, Role: models.RoleParent})

	w := doRequest(t, r, http.MethodGet, "/mobile/calendar?startDate=2026-09-01&endDate=2026-09-30&types=birthday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
