package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Profile visibility values. A private profile requires explicit approval
// before a follow request becomes an actual follow.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"uniqueIndex;size:30"`
	Email       string     `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	DisplayName string     `json:"display_name"`
	Photo       string     `json:"photo"`
	Bio         string     `json:"bio"`
	Visibility  string     `json:"visibility" gorm:"type:varchar(10);default:'public'"`
	BannedUntil *time.Time `json:"banned_until,omitempty"`
	Password    string     `json:"-"` // Store hashed password, ignore for JSON serialization
	FirebaseUID string     `json:"firebase_uid,omitempty" gorm:"index"` // empty for local accounts, so no unique constraint
}

// IsBanned reports whether the user is inside an active ban window.
func (u *User) IsBanned() bool {
	return u.BannedUntil != nil && u.BannedUntil.After(time.Now())
}

// UserCompact is the trimmed-down user shape embedded in enriched payloads
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Photo       string `json:"photo"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Photo:       u.Photo,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
	FirebaseUID string `json:"firebase_uid" validate:"required"` // Firebase UID will be provided by the client after Firebase Auth
}

type CreateLocalUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
	Password    string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=2,max=50"`
	Photo       string `json:"photo,omitempty"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
