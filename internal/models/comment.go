package models

import "time"

// Comment is attached to a media item; a non-nil ParentID makes it a reply.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MediaID   uint      `json:"media_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	Text      string    `json:"text" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentLike records one like per user per comment
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	MediaID  uint   `json:"media_id" validate:"required"`
	Text     string `json:"text" validate:"required,max=2000"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
