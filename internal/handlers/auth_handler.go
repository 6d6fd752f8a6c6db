package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/internal/middleware"
	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// LoginInput binds the login request body.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenTTL is how long issued tokens stay valid.
const TokenTTL = 24 * time.Hour

// Login authenticates a user by email and password and issues a signed JWT
// carrying the user id and role.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid login payload", err)
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		h.serverError(c, "login lookup failed", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(h.secret)
	if err != nil {
		h.serverError(c, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   signed,
		"user":    user.ToResponse(),
	})
}

// UpdateProfile lets the authenticated user change contact details and,
// optionally, the password. The cached auth data is invalidated afterwards.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		Phone       string `json:"phone"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid profile payload", err)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		notFound(c, "User not found")
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if input.NewPassword != "" {
		if input.OldPassword == "" {
			badRequest(c, "Old password is required to set a new one", nil)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
			badRequest(c, "Old password is incorrect", nil)
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			h.serverError(c, "failed to hash password", err)
			return
		}
		user.Password = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		h.serverError(c, "failed to save profile", err)
		return
	}

	if err := middleware.InvalidateUser(c, h.rdb, user.ID); err != nil {
		h.log.Warn("failed to invalidate user cache after profile update", "error", err, "user_id", user.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user.ToResponse()})
}
