package repositories

import (
	"github.com/moviegram/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MediaRepository covers the media catalog, watch-list entries and ratings
type MediaRepository interface {
	CreateMedia(media *models.Media) error
	GetMediaByID(id uint) (*models.Media, error)
	GetMediaByExternalID(externalID string) (*models.Media, error)
	AddToList(userID, mediaID uint, list string) (*models.UserMedia, error)
	RemoveFromList(userID, mediaID uint) (bool, error)
	GetUserList(userID uint, list string) ([]models.UserMedia, error)
	RateMedia(userID, mediaID uint, rating int) (bool, error)
}

// PostgresMediaRepository implements MediaRepository for PostgreSQL
type PostgresMediaRepository struct {
	db *gorm.DB
}

// NewPostgresMediaRepository creates a new PostgresMediaRepository
func NewPostgresMediaRepository(db *gorm.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

func (r *PostgresMediaRepository) CreateMedia(media *models.Media) error {
	return r.db.Create(media).Error
}

func (r *PostgresMediaRepository) GetMediaByID(id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *PostgresMediaRepository) GetMediaByExternalID(externalID string) (*models.Media, error) {
	var media models.Media
	if err := r.db.Where("external_id = ?", externalID).First(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// AddToList creates or moves a watch-list entry for (user, media). A media
// item sits on at most one of the user's lists at a time.
func (r *PostgresMediaRepository) AddToList(userID, mediaID uint, list string) (*models.UserMedia, error) {
	var media models.Media
	if err := r.db.First(&media, mediaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "media %d", mediaID)
		}
		return nil, err
	}

	var entry models.UserMedia
	err := r.db.Where("user_id = ? AND media_id = ?", userID, mediaID).First(&entry).Error
	if err == nil {
		entry.List = list
		if err := r.db.Save(&entry).Error; err != nil {
			return nil, err
		}
		return &entry, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	entry = models.UserMedia{UserID: userID, MediaID: mediaID, List: list}
	if err := r.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresMediaRepository) RemoveFromList(userID, mediaID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND media_id = ?", userID, mediaID).Delete(&models.UserMedia{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresMediaRepository) GetUserList(userID uint, list string) ([]models.UserMedia, error) {
	var entries []models.UserMedia
	err := r.db.Where("user_id = ? AND list = ?", userID, list).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// RateMedia sets the rating on the user's existing watch-list entry; rating
// something you haven't listed returns false.
func (r *PostgresMediaRepository) RateMedia(userID, mediaID uint, rating int) (bool, error) {
	var entry models.UserMedia
	err := r.db.Where("user_id = ? AND media_id = ?", userID, mediaID).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if err := r.db.Model(&entry).Update("rating", rating).Error; err != nil {
		return false, err
	}
	return true, nil
}
