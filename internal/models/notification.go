package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification event types
const (
	EventNewFollower = "NewFollower"
	EventReply       = "Reply"
	EventAchievement = "Achievement"
	EventMessage     = "Message"
	EventNewMedia    = "NewMedia"
)

// Notification is a single-table store for all notification variants,
// discriminated by EventType. The variant reference columns are nullable;
// each row only fills the ones its event type needs.
type Notification struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	EventType       string     `json:"event_type" gorm:"size:20;index"`
	ActorID         uint       `json:"actor_id" gorm:"index"`
	TargetID        uint       `json:"target_id" gorm:"index"`
	Message         string     `json:"message"`
	PreviewImageURL string     `json:"preview_image_url"` // actor photo or media poster, snapshot at creation
	MediaID         *uint      `json:"media_id,omitempty"`
	CommentID       *uint      `json:"comment_id,omitempty"`
	MedalID         *uint      `json:"medal_id,omitempty"`
	MessageID       *uuid.UUID `json:"message_id,omitempty" gorm:"type:uuid"`
	UserMediaID     *uint      `json:"user_media_id,omitempty"`
	IsRead          bool       `json:"is_read" gorm:"default:false;index"`
	CreatedAt       time.Time  `json:"created_at" gorm:"index"`
}

// EnrichedNotification re-joins the actor's current display info at query time
type EnrichedNotification struct {
	Notification
	Actor UserCompact `json:"actor"`
}
