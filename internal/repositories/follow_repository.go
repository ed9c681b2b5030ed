package repositories

import (
	"github.com/moviegram/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository owns the follow graph. Invalid operations (self-follow,
// duplicate follow, acting on a missing edge) come back as a false boolean
// rather than an error; errors are reserved for storage failures.
type FollowRepository interface {
	Follow(followerID, followeeID uint) (bool, error)
	Unfollow(followerID, followeeID uint) (bool, error)
	AcceptFollowRequest(followeeID, followerID uint) (bool, error)
	RejectFollowRequest(followeeID, followerID uint) (bool, error)
	IsFollowing(followerID, followeeID uint) (bool, error)
	IsFollowPending(followerID, followeeID uint) (bool, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetPendingFollowers(userID uint) ([]models.User, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// Follow creates an edge from follower to followee. The edge starts approved
// when the followee's profile is public and pending when it is private. The
// check-then-insert sequence runs in one transaction and the edge table has a
// unique (follower_id, followee_id) index, so concurrent duplicate requests
// cannot produce two edges.
func (r *PostgresFollowRepository) Follow(followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, nil
	}

	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&existing).Error
		if err == nil {
			// Already pending or already following; either way a duplicate.
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		var followee models.User
		if err := tx.First(&followee, followeeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		edge := models.Follow{
			FollowerID: followerID,
			FolloweeID: followeeID,
			Approved:   followee.Visibility == models.VisibilityPublic,
		}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Unfollow removes the edge regardless of its pending/approved state
func (r *PostgresFollowRepository) Unfollow(followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, nil
	}
	res := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AcceptFollowRequest flips the edge to approved. Accepting an edge that is
// already approved is an idempotent success.
func (r *PostgresFollowRepository) AcceptFollowRequest(followeeID, followerID uint) (bool, error) {
	var edge models.Follow
	err := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&edge).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if edge.Approved {
		return true, nil
	}
	if err := r.db.Model(&edge).Update("approved", true).Error; err != nil {
		return false, err
	}
	return true, nil
}

// RejectFollowRequest deletes the edge. No pending-state precondition: an
// approved edge is deleted too, same as an unfollow from the followee's side.
func (r *PostgresFollowRepository) RejectFollowRequest(followeeID, followerID uint) (bool, error) {
	var edge models.Follow
	err := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&edge).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if err := r.db.Delete(&edge).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ? AND approved = ?", followerID, followeeID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) IsFollowPending(followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ? AND approved = ?", followerID, followeeID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers returns the users following userID; approved edges only
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("followee_id = ? AND approved = ?", userID, true),
	).Find(&users).Error
	return users, err
}

// GetFollowing returns the users userID follows; approved edges only
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("followee_id").Where("follower_id = ? AND approved = ?", userID, true),
	).Find(&users).Error
	return users, err
}

// GetPendingFollowers returns the users whose follow requests await userID's decision
func (r *PostgresFollowRepository) GetPendingFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("followee_id = ? AND approved = ?", userID, false),
	).Find(&users).Error
	return users, err
}

// Follower/following counts are always derived from the edge table; nothing
// keeps a denormalized counter that could drift.

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followee_id = ? AND approved = ?", userID, true).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND approved = ?", userID, true).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND approved = ?", userID, true).Pluck("followee_id", &ids).Error
	return ids, err
}
