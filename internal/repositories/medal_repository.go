package repositories

import (
	"github.com/moviegram/backend/internal/models"
	"gorm.io/gorm"
)

// MedalRepository is the gamification ledger
type MedalRepository interface {
	CreateMedal(medal *models.Medal) error
	GetMedalByID(id uint) (*models.Medal, error)
	GetMedalByName(name string) (*models.Medal, error)
	ListMedals() ([]models.Medal, error)
	AwardMedal(userID, medalID uint) (bool, error)
	GetUserMedals(userID uint) ([]models.Medal, error)
}

// PostgresMedalRepository implements MedalRepository for PostgreSQL
type PostgresMedalRepository struct {
	db *gorm.DB
}

// NewPostgresMedalRepository creates a new PostgresMedalRepository
func NewPostgresMedalRepository(db *gorm.DB) *PostgresMedalRepository {
	return &PostgresMedalRepository{db: db}
}

func (r *PostgresMedalRepository) CreateMedal(medal *models.Medal) error {
	return r.db.Create(medal).Error
}

func (r *PostgresMedalRepository) GetMedalByID(id uint) (*models.Medal, error) {
	var medal models.Medal
	if err := r.db.First(&medal, id).Error; err != nil {
		return nil, err
	}
	return &medal, nil
}

func (r *PostgresMedalRepository) GetMedalByName(name string) (*models.Medal, error) {
	var medal models.Medal
	if err := r.db.Where("name = ?", name).First(&medal).Error; err != nil {
		return nil, err
	}
	return &medal, nil
}

func (r *PostgresMedalRepository) ListMedals() ([]models.Medal, error) {
	var medals []models.Medal
	if err := r.db.Find(&medals).Error; err != nil {
		return nil, err
	}
	return medals, nil
}

// AwardMedal grants a medal to a user. Awarding is idempotent per
// (user, medal): the first call returns true, repeats return false without
// creating a second grant.
func (r *PostgresMedalRepository) AwardMedal(userID, medalID uint) (bool, error) {
	if _, err := r.GetMedalByID(medalID); err != nil {
		return false, err
	}

	awarded := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.UserMedal
		err := tx.Where("user_id = ? AND medal_id = ?", userID, medalID).First(&existing).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		grant := models.UserMedal{UserID: userID, MedalID: medalID}
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}
		awarded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return awarded, nil
}

func (r *PostgresMedalRepository) GetUserMedals(userID uint) ([]models.Medal, error) {
	var medals []models.Medal
	err := r.db.Where("id IN (?)",
		r.db.Table("user_medals").Select("medal_id").Where("user_id = ?", userID),
	).Find(&medals).Error
	return medals, err
}
