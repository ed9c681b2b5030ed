package models

import "time"

// Media kinds
const (
	MediaKindMovie = "movie"
	MediaKindTV    = "tv"
)

// Watch-list categories
const (
	ListWatched    = "watched"
	ListWatchLater = "watch-later"
	ListFavorite   = "favorite"
)

// Media is a catalog row for a movie or TV show
type Media struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ExternalID string    `json:"external_id" gorm:"uniqueIndex;size:40"` // id in the upstream movie database
	Title      string    `json:"title"`
	Kind       string    `json:"kind" gorm:"type:varchar(10)"`
	Poster     string    `json:"poster"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserMedia is a watch-list entry tying a user to a media item. Rating is
// optional and lives on the entry rather than in a separate table.
type UserMedia struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_media"`
	MediaID   uint      `json:"media_id" gorm:"index;uniqueIndex:idx_user_media"`
	List      string    `json:"list" gorm:"type:varchar(15)"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateMediaRequest struct {
	ExternalID string `json:"external_id" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=movie tv"`
	Poster     string `json:"poster"`
}

type AddToListRequest struct {
	MediaID uint   `json:"media_id" validate:"required"`
	List    string `json:"list" validate:"required,oneof=watched watch-later favorite"`
}

type RateMediaRequest struct {
	Rating int `json:"rating" validate:"min=0,max=10"`
}
