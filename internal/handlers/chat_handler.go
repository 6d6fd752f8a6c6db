package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

// OpenChatInput binds the request to open (or resume) a chat with another
// user, typically a parent messaging a teacher.
type OpenChatInput struct {
	PeerID uint `json:"peerId" binding:"required"`
}

// OpenChat finds the existing chat between the caller and the peer or
// creates one. The pair is stored with the lower id first so the unique
// index catches duplicates regardless of who opened the chat.
func (h *Handler) OpenChat(c *gin.Context) {
	userID := c.GetUint("user_id")
	schoolID := c.GetUint("school_id")

	var input OpenChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid chat payload", err)
		return
	}
	if input.PeerID == userID {
		badRequest(c, "Cannot open a chat with yourself", nil)
		return
	}

	var peer models.User
	if err := h.db.First(&peer, input.PeerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Peer user not found")
			return
		}
		h.serverError(c, "peer lookup failed", err)
		return
	}

	a, b := userID, input.PeerID
	if b < a {
		a, b = b, a
	}

	chat := models.Chat{SchoolID: schoolID, UserAID: a, UserBID: b}
	if err := h.db.Where(models.Chat{UserAID: a, UserBID: b}).FirstOrCreate(&chat).Error; err != nil {
		h.serverError(c, "chat create failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chat ready", "chat": chat})
}

// ListChatMessages returns the message history of a chat the caller belongs
// to, oldest first.
func (h *Handler) ListChatMessages(c *gin.Context) {
	userID := c.GetUint("user_id")
	chatID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "A valid chat id is required", err)
		return
	}

	var chat models.Chat
	if err := h.db.First(&chat, chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Chat not found")
			return
		}
		h.serverError(c, "chat lookup failed", err)
		return
	}
	if chat.UserAID != userID && chat.UserBID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not a member of this chat"})
		return
	}

	var messages []models.ChatMessage
	if err := h.db.
		Where("chat_id = ?", chat.ID).
		Order("created_at asc").
		Scopes(Paginate(c)).
		Find(&messages).Error; err != nil {
		h.serverError(c, "chat message query failed", err)
		return
	}

	// Opening the history marks the peer's messages as read.
	if err := h.db.Model(&models.ChatMessage{}).
		Where("chat_id = ? AND sender_id != ? AND read = ?", chat.ID, userID, false).
		Update("read", true).Error; err != nil {
		h.log.Warn("failed to mark chat messages read", "error", err, "chat_id", chat.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Messages retrieved successfully",
		"chat":     chat,
		"messages": messages,
	})
}
