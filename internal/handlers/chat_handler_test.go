package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

func chatRouter(e *testEnv, id identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", id.UserID)
		c.Set("school_id", id.SchoolID)
		c.Set("role", id.Role)
		c.Next()
	})
	r.POST("/mobile/chats", e.H.OpenChat)
	r.GET("/mobile/chats/:id/messages", e.H.ListChatMessages)
	return r
}

func TestOpenChat_Idempotent(t *testing.T) {
	e := newTestEnv(t)
	parent, _, _ := e.seedStudent(t)
	teacher := models.User{
		SchoolID: e.School.ID, Role: models.RoleTeacher,
		Email: "chat-teacher@example.com", Password: "x",
		FirstName: "Tina", LastName: "Teach",
	}
	require.NoError(t, e.DB.Create(&teacher).Error)

	r := chatRouter(e, identity{UserID: parent.ID, SchoolID: e.School.ID, Role: models.RoleParent})
	body := fmt.Sprintf(`{"peerId":%d}`, teacher.ID)

	w := doRequest(t, r, http.MethodPost, "/mobile/chats", bytes.NewReader([]byte(body)))
	require.Equal(t, http.StatusOK, w.Code)
	first := decodeBody(t, w)["chat"].(map[string]interface{})

	// Opening again, from either side, reuses the same chat row.
	r2 := chatRouter(e, identity{UserID: teacher.ID, SchoolID: e.School.ID, Role: models.RoleTeacher})
	body2 := fmt.Sprintf(`{"peerId":%d}`, parent.ID)
	w = doRequest(t, r2, http.MethodPost, "/mobile/chats", bytes.NewReader([]byte(body2)))
	require.Equal(t, http.StatusOK, w.Code)
	second := decodeBody(t, w)["chat"].(map[string]interface{})

	assert.Equal(t, first["ID"], second["ID"])

	var count int64
	require.NoError(t, e.DB.Model(&models.Chat{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpenChat_SelfAndUnknownPeer(t *testing.T) {
	e := newTestEnv(t)
	parent, _, _ := e.seedStudent(t)
	r := chatRouter(e, identity{UserID: parent.ID, SchoolID: e.School.ID, Role: models.RoleParent})

	body := fmt.Sprintf(`{"peerId":%d}`, parent.ID)
	w := doRequest(t, r, http.MethodPost, "/mobile/chats", bytes.NewReader([]byte(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/mobile/chats", bytes.NewReader([]byte(`{"peerId":99999}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListChatMessages(t *testing.T) {
	e := newTestEnv(t)
	parent, _, _ := e.seedStudent(t)
	teacher := models.User{
		SchoolID: e.School.ID, Role: models.RoleTeacher,
		Email: "history-teacher@example.com", Password: "x",
		FirstName: "His", LastName: "Story",
	}
	require.NoError(t, e.DB.Create(&teacher).Error)

	chat := models.Chat{SchoolID: e.School.ID, UserAID: parent.ID, UserBID: teacher.ID}
	require.NoError(t, e.DB.Create(&chat).Error)
	require.NoError(t, e.DB.Create(&models.ChatMessage{
		ChatID: chat.ID, SenderID: teacher.ID, MessageID: "m1", Body: "Hello",
	}).Error)
	require.NoError(t, e.DB.Create(&models.ChatMessage{
		ChatID: chat.ID, SenderID: parent.ID, MessageID: "m2", Body: "Hi",
	}).Error)

	r := chatRouter(e, identity{UserID: parent.ID, SchoolID: e.School.ID, Role: models.RoleParent})
	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/mobile/chats/%d/messages", chat.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	messages := decodeBody(t, w)["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello", messages[0].(map[string]interface{})["body"])

	// Reading the history marks the peer's messages as read.
	var unread int64
	require.NoError(t, e.DB.Model(&models.ChatMessage{}).
		Where("chat_id = ? AND sender_id = ? AND read = ?", chat.ID, teacher.ID, false).
		Count(&unread).Error)
	assert.Zero(t, unread)
}

func TestListChatMessages_NonMember(t *testing.T) {
	e := newTestEnv(t)
	parent, _, _ := e.seedStudent(t)

	chat := models.Chat{SchoolID: e.School.ID, UserAID: parent.ID + 50, UserBID: parent.ID + 51}
	require.NoError(t, e.DB.Create(&chat).Error)

	r := chatRouter(e, identity{UserID: parent.ID, SchoolID: e.School.ID, Role: models.RoleParent})
	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/mobile/chats/%d/messages", chat.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
