package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

const userCacheTTL = 10 * time.Minute

// CachedUser is the per-user auth data kept in redis between requests.
type CachedUser struct {
	UserID   uint   `json:"user_id"`
	SchoolID uint   `json:"school_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Auth builds the authentication middleware. It validates the bearer token,
// then resolves the user from redis (when available) or the database and
// stores user_id, school_id and role on the gin context.
type Auth struct {
	db     *gorm.DB
	rdb    *redis.Client
	log    *slog.Logger
	secret []byte
}

func NewAuth(db *gorm.DB, rdb *redis.Client, log *slog.Logger, secret []byte) *Auth {
	return &Auth{db: db, rdb: rdb, log: log, secret: secret}
}

// Handler returns the gin middleware function.
func (a *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			abortUnauthorized(c, "Authorization token not provided")
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}
		userID := uint(userIDFloat)

		if user, ok := a.fromCache(c, userID); ok {
			setContextAndProceed(c, user)
			return
		}

		var dbUser models.User
		if err := a.db.First(&dbUser, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthorized(c, "User from token no longer exists")
				return
			}
			a.log.Error("auth lookup failed", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		user := &CachedUser{
			UserID:   dbUser.ID,
			SchoolID: dbUser.SchoolID,
			Email:    dbUser.Email,
			Role:     dbUser.Role,
		}
		a.toCache(c, user)
		setContextAndProceed(c, user)
	}
}

// RequireRole guards a route group to a single role. Admins pass everywhere.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetString("role")
		if got == role || got == models.RoleAdmin {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied for role " + got})
	}
}

// InvalidateUser drops the cached auth data for a user, e.g. after a profile
// update. A nil client is a no-op.
func InvalidateUser(c *gin.Context, rdb *redis.Client, userID uint) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(c.Request.Context(), cacheKey(userID)).Err()
}

func (a *Auth) fromCache(c *gin.Context, userID uint) (*CachedUser, bool) {
	if a.rdb == nil {
		return nil, false
	}
	data, err := a.rdb.Get(c.Request.Context(), cacheKey(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.log.Error("redis GET failed", "error", err, "user_id", userID)
		}
		return nil, false
	}
	var user CachedUser
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		a.log.Warn("failed to unmarshal cached user", "user_id", userID, "error", err)
		return nil, false
	}
	return &user, true
}

func (a *Auth) toCache(c *gin.Context, user *CachedUser) {
	if a.rdb == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := a.rdb.Set(c.Request.Context(), cacheKey(user.UserID), data, userCacheTTL).Err(); err != nil {
		a.log.Error("failed to cache user data", "error", err, "user_id", user.UserID)
	}
}

func cacheKey(userID uint) string {
	return fmt.Sprintf("user:%d:data", userID)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func setContextAndProceed(c *gin.Context, user *CachedUser) {
	c.Set("user_id", user.UserID)
	c.Set("school_id", user.SchoolID)
	c.Set("email", user.Email)
	c.Set("role", user.Role)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}
