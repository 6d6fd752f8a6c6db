package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// testEnv bundles an in-memory database, a handler and a router wired the
// same way as production, minus JWT: the auth middleware is replaced by a
// stub that injects the given identity into the request context.
type testEnv struct {
	DB     *gorm.DB
	H      *Handler
	School models.School
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&models.School{},
		&models.User{},
		&models.Student{},
		&models.Grade{},
		&models.Subject{},
		&models.Class{},
		&models.Lesson{},
		&models.Term{},
		&models.Holiday{},
		&models.Timetable{},
		&models.TimetableSlot{},
		&models.Attendance{},
		&models.Assignment{},
		&models.AssignmentSubmission{},
		&models.Exam{},
		&models.ExamQuestion{},
		&models.Result{},
		&models.FeeStructure{},
		&models.FeeBreakdownItem{},
		&models.StudentFeeOverride{},
		&models.Payment{},
		&models.Chat{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.Announcement{},
		&models.Event{},
		&models.EventRSVP{},
	)
	require.NoError(t, err, "failed to migrate test schema")
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(db, nil, log, []byte("test-secret"))

	school := models.School{Name: "Test School"}
	require.NoError(t, db.Create(&school).Error)

	return &testEnv{DB: db, H: h, School: school}
}

// identity is the authenticated caller a test router impersonates.
type identity struct {
	UserID   uint
	SchoolID uint
	Role     string
}

// router builds a gin engine with the mobile and admin routes and a stubbed
// auth middleware carrying the given identity.
func (e *testEnv) router(id identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", id.UserID)
		c.Set("school_id", id.SchoolID)
		c.Set("role", id.Role)
		c.Next()
	})

	mobile := r.Group("/mobile")
	{
		mobile.GET("/students/:studentId/timetable", e.H.GetStudentTimetable)
		mobile.GET("/students/:studentId/attendance", e.H.GetStudentAttendance)
		mobile.GET("/calendar", e.H.GetAcademicCalendar)
		mobile.GET("/notifications", e.H.ListNotifications)
		mobile.POST("/notifications/:id/read", e.H.MarkNotificationRead)
		mobile.GET("/announcements", e.H.ListAnnouncements)

		parent := mobile.Group("/parent")
		parent.Use(requireRole(models.RoleParent))
		{
			parent.GET("/home", e.H.GetParentHome)
			parent.GET("/children", e.H.GetChildren)
			parent.GET("/profile", e.H.GetParentProfile)
		}
	}

	api := r.Group("/api/v1")
	api.Use(requireRole(models.RoleAdmin))
	{
		api.GET("/classes", e.H.ListClasses)
		api.POST("/classes", e.H.CreateClass)
		api.GET("/classes/:id", e.H.GetClass)
		api.PUT("/classes/:id", e.H.UpdateClass)
		api.DELETE("/classes/:id", e.H.DeleteClass)
		api.GET("/classes/:id/attendance/export", e.H.ExportClassAttendance)
	}

	r.POST("/mobile/auth/login", e.H.Login)
	return r
}

// requireRole mirrors middleware.RequireRole without importing it, keeping
// the handler tests free of an import cycle risk.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetString("role")
		if got == role || got == models.RoleAdmin {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied for role " + got})
	}
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "response was not valid JSON: %s", w.Body.String())
	return body
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedStudent creates a parent, class (with grade) and student in one go.
func (e *testEnv) seedStudent(t *testing.T) (models.User, models.Class, models.Student) {
	t.Helper()

	parent := models.User{
		SchoolID:  e.School.ID,
		Role:      models.RoleParent,
		Email:     "parent+" + time.Now().Format("150405.000000") + "@example.com",
		Password:  "x",
		FirstName: "Pat",
		LastName:  "Doe",
	}
	require.NoError(t, e.DB.Create(&parent).Error)

	grade := models.Grade{SchoolID: e.School.ID, Name: "Grade 7-" + parent.Email, Level: 7}
	require.NoError(t, e.DB.Create(&grade).Error)

	class := models.Class{
		SchoolID: e.School.ID,
		Name:     "7A-" + parent.Email,
		Capacity: 30,
		GradeID:  grade.ID,
	}
	require.NoError(t, e.DB.Create(&class).Error)

	birth := date(2012, time.March, 15)
	student := models.Student{
		SchoolID:  e.School.ID,
		ClassID:   &class.ID,
		ParentID:  &parent.ID,
		FirstName: "Sam",
		LastName:  "Doe",
		BirthDate: &birth,
	}
	require.NoError(t, e.DB.Create(&student).Error)

	return parent, class, student
}
