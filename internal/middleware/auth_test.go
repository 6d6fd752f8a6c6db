package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

var testSecret = []byte("test-secret")

func setupAuth(t *testing.T) (*Auth, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.School{}, &models.User{}))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuth(db, nil, log, testSecret), db
}

func authRouter(a *Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", a.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetUint("user_id"),
			"role":   c.GetString("role"),
		})
	})
	return r
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestAuthHandler_ValidToken(t *testing.T) {
	a, db := setupAuth(t)

	school := models.School{Name: "Auth School"}
	require.NoError(t, db.Create(&school).Error)
	user := models.User{
		SchoolID: school.ID, Role: models.RoleParent,
		Email: "parent@example.com", Password: "x",
		FirstName: "Pat", LastName: "Rent",
	}
	require.NoError(t, db.Create(&user).Error)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authRouter(a).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"parent"`)
}

func TestAuthHandler_Rejections(t *testing.T) {
	a, db := setupAuth(t)

	school := models.School{Name: "Auth School"}
	require.NoError(t, db.Create(&school).Error)

	expired := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, []byte("other-secret"), jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	ghost := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 4242,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
		{"unknown user", "Bearer " + ghost},
	}
	r := authRouter(a)
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.name)
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", func(c *gin.Context) {
		c.Set("role", c.Query("as"))
		c.Next()
	}, RequireRole(models.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		role string
		want int
	}{
		{models.RoleTeacher, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleParent, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/admin-only?as="+tc.role, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.role)
	}
}
