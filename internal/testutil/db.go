package testutil

import (
	"testing"

	"github.com/moviegram/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetTestDB opens an empty in-memory database with all models migrated
func GetTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Notification{},
		&models.Media{},
		&models.UserMedia{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Medal{},
		&models.UserMedal{},
		&models.Chat{},
		&models.Message{},
		&models.MessageRecipient{},
		&models.QuizAttempt{},
	)
	require.NoError(t, err, "failed to migrate db")

	return db
}

// CreateUser inserts a user with the given visibility and returns it
func CreateUser(t *testing.T, db *gorm.DB, username, visibility string) *models.User {
	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		DisplayName: username,
		Visibility:  visibility,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
