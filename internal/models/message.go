package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a direct-message thread between two users. UserAID always holds
// the smaller user id so a pair maps to exactly one chat.
type Chat struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserAID   uint      `json:"user_a_id" gorm:"index;uniqueIndex:idx_chat_pair"`
	UserBID   uint      `json:"user_b_id" gorm:"index;uniqueIndex:idx_chat_pair"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ChatID   uuid.UUID `json:"chat_id" gorm:"type:uuid;index"`
	SenderID uint      `json:"sender_id" gorm:"index"`
	Text     string    `json:"text" gorm:"type:text"`
	SentAt   time.Time `json:"sent_at" gorm:"index"`
}

// MessageRecipient carries the per-recipient state of a message: read flag
// and the hidden flag used when a participant clears the chat on their side.
type MessageRecipient struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	MessageID   uuid.UUID `json:"message_id" gorm:"type:uuid;index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	Hidden      bool      `json:"hidden" gorm:"default:false"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Text        string `json:"text" validate:"required,max=4000"`
}
