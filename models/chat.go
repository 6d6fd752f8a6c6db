package models

import "gorm.io/gorm"

// Chat is a conversation between two users, typically a parent and a teacher.
type Chat struct {
	gorm.Model
	SchoolID uint `json:"schoolId" gorm:"index;not null"`
	UserAID  uint `json:"userAId" gorm:"uniqueIndex:idx_chat_pair;not null"`
	UserBID  uint `json:"userBId" gorm:"uniqueIndex:idx_chat_pair;not null"`

	Messages []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:ChatID"`
}

// ChatMessage is one message in a chat. MessageID is the client-visible
// identifier used for websocket acknowledgements.
type ChatMessage struct {
	gorm.Model
	ChatID    uint   `json:"chatId" gorm:"index;not null"`
	SenderID  uint   `json:"senderId" gorm:"index;not null"`
	MessageID string `json:"messageId" gorm:"size:36;uniqueIndex"`
	Body      string `json:"body" gorm:"not null"`
	Read      bool   `json:"read" gorm:"default:false"`
}
