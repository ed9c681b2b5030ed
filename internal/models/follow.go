package models

import "time"

// Follow represents a directed follow edge. Approved stays false while the
// request waits for a private profile's consent; the unique index keeps at
// most one edge per ordered pair even under concurrent requests.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followee"`
	FolloweeID uint      `json:"followee_id" gorm:"index;uniqueIndex:idx_follower_followee"`
	Approved   bool      `json:"approved" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
}
