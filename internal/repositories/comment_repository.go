package repositories

import (
	"github.com/moviegram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment and comment-like operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsForMedia(mediaID uint) ([]models.Comment, error)
	GetReplies(commentID uint) ([]models.Comment, error)
	DeleteComment(id uint) error
	LikeComment(userID, commentID uint) (bool, error)
	UnlikeComment(userID, commentID uint) (bool, error)
	GetLikesCount(commentID uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsForMedia returns top-level comments for a media item, oldest first
func (r *PostgresCommentRepository) GetCommentsForMedia(mediaID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("media_id = ? AND parent_id IS NULL", mediaID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) GetReplies(commentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.Where("parent_id = ?", commentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// DeleteComment removes a comment along with its replies and likes
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// LikeComment records a like; a second like from the same user returns false
func (r *PostgresCommentRepository) LikeComment(userID, commentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	like := models.CommentLike{UserID: userID, CommentID: commentID}
	if err := r.db.Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresCommentRepository) UnlikeComment(userID, commentID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresCommentRepository) GetLikesCount(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
