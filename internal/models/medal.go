package models

import "time"

// Medal is a catalog entry for an unlockable achievement
type Medal struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:60"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UserMedal is a grant of a medal to a user; the unique index makes awarding
// idempotent per (user, medal) pair.
type UserMedal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_medal"`
	MedalID   uint      `json:"medal_id" gorm:"index;uniqueIndex:idx_user_medal"`
	AwardedAt time.Time `json:"awarded_at" gorm:"autoCreateTime"`
}

type CreateMedalRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=60"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
