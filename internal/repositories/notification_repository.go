package repositories

import (
	"fmt"

	"github.com/moviegram/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound marks a creation or query that referenced a user, medal, media,
// comment or message that does not exist. Handlers translate it to a 404.
var ErrNotFound = errors.New("referenced record not found")

// IsNotFound reports whether err originated from a missing reference
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// NotificationRepository is the fan-out store. All five variants share one
// table discriminated by event type, so the read-side operations take the
// event type as a parameter instead of existing five times over.
type NotificationRepository interface {
	CreateFollowNotification(actorID, targetID uint) (*models.Notification, error)
	CreateReplyNotification(actorID, targetID, mediaID, commentID uint, replyText string) (*models.Notification, error)
	CreateAchievementNotification(actorID, medalID uint) (*models.Notification, error)
	CreateMessageNotification(actorID, targetID uint) (*models.Notification, error)
	CreateMediaNotification(actorID, mediaID uint, mediaName, mediaPhoto string) (*models.Notification, error)
	GetNotificationsForUser(username, eventType string) ([]models.EnrichedNotification, error)
	MarkAllAsRead(username, eventType string) error
	HasUnreadNotifications(username string) (bool, error)
	ClearNotificationsForUser(username string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) userByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "user %d", id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresNotificationRepository) userByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "user %q", username)
		}
		return nil, err
	}
	return &user, nil
}

// CreateFollowNotification notifies targetID that actorID now follows them.
// It is fired right after a successful follow, whether the edge landed
// approved or pending; for a private profile this row doubles as the signal
// that a request is waiting.
func (r *postgresNotificationRepository) CreateFollowNotification(actorID, targetID uint) (*models.Notification, error) {
	actor, err := r.userByID(actorID)
	if err != nil {
		return nil, err
	}
	target, err := r.userByID(targetID)
	if err != nil {
		return nil, err
	}

	n := models.Notification{
		EventType:       models.EventNewFollower,
		ActorID:         actor.ID,
		TargetID:        target.ID,
		Message:         fmt.Sprintf("%s começou-te a seguir!", actor.DisplayName),
		PreviewImageURL: actor.Photo,
	}
	if err := r.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateReplyNotification notifies targetID that actorID replied to their comment
func (r *postgresNotificationRepository) CreateReplyNotification(actorID, targetID, mediaID, commentID uint, replyText string) (*models.Notification, error) {
	actor, err := r.userByID(actorID)
	if err != nil {
		return nil, err
	}
	target, err := r.userByID(targetID)
	if err != nil {
		return nil, err
	}
	var media models.Media
	if err := r.db.First(&media, mediaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "media %d", mediaID)
		}
		return nil, err
	}
	var comment models.Comment
	if err := r.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "comment %d", commentID)
		}
		return nil, err
	}

	n := models.Notification{
		EventType:       models.EventReply,
		ActorID:         actor.ID,
		TargetID:        target.ID,
		Message:         fmt.Sprintf("%s respondeu ao teu comentário: \"%s\"", actor.DisplayName, replyText),
		PreviewImageURL: actor.Photo,
		MediaID:         &media.ID,
		CommentID:       &comment.ID,
	}
	if err := r.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateAchievementNotification is a self-notification: the target is the
// user who unlocked the medal.
func (r *postgresNotificationRepository) CreateAchievementNotification(actorID, medalID uint) (*models.Notification, error) {
	actor, err := r.userByID(actorID)
	if err != nil {
		return nil, err
	}
	var medal models.Medal
	if err := r.db.First(&medal, medalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "medal %d", medalID)
		}
		return nil, err
	}

	n := models.Notification{
		EventType: models.EventAchievement,
		ActorID:   actor.ID,
		TargetID:  actor.ID,
		Message:   fmt.Sprintf("Desbloqueaste a medalha %s!", medal.Name),
		MedalID:   &medal.ID,
	}
	if err := r.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateMessageNotification notifies about the actor's most recent sent
// message. The stored recipient-state row decides the target; the targetID
// parameter only travels with the route shape.
func (r *postgresNotificationRepository) CreateMessageNotification(actorID, targetID uint) (*models.Notification, error) {
	actor, err := r.userByID(actorID)
	if err != nil {
		return nil, err
	}

	var msg models.Message
	if err := r.db.Where("sender_id = ?", actorID).Order("sent_at DESC").First(&msg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "no sent message for user %d", actorID)
		}
		return nil, err
	}
	var state models.MessageRecipient
	if err := r.db.Where("message_id = ?", msg.ID).First(&state).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.Wrapf(ErrNotFound, "recipient state for message %s", msg.ID)
		}
		return nil, err
	}

	n := models.Notification{
		EventType:       models.EventMessage,
		ActorID:         actor.ID,
		TargetID:        state.RecipientID,
		Message:         fmt.Sprintf("%s enviou-te uma mensagem!", actor.DisplayName),
		PreviewImageURL: actor.Photo,
		MessageID:       &msg.ID,
	}
	if err := r.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateMediaNotification is broadcast-style: it targets the owner of a
// watch-list entry referencing the media. A missing entry is not an error,
// and an identical notification for the same actor and entry is suppressed.
// Both of those cases return (nil, nil).
func (r *postgresNotificationRepository) CreateMediaNotification(actorID, mediaID uint, mediaName, mediaPhoto string) (*models.Notification, error) {
	actor, err := r.userByID(actorID)
	if err != nil {
		return nil, err
	}

	var entry models.UserMedia
	if err := r.db.Where("media_id = ?", mediaID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	message := fmt.Sprintf("%s já está disponível!", mediaName)

	var count int64
	err = r.db.Model(&models.Notification{}).
		Where("event_type = ? AND actor_id = ? AND user_media_id = ? AND message = ?",
			models.EventNewMedia, actor.ID, entry.ID, message).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	n := models.Notification{
		EventType:       models.EventNewMedia,
		ActorID:         actor.ID,
		TargetID:        entry.UserID,
		Message:         message,
		PreviewImageURL: mediaPhoto,
		MediaID:         &entry.MediaID,
		UserMediaID:     &entry.ID,
	}
	if err := r.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// GetNotificationsForUser returns one variant's notifications targeted at the
// user, newest first, with the actor's current display info joined in.
func (r *postgresNotificationRepository) GetNotificationsForUser(username, eventType string) ([]models.EnrichedNotification, error) {
	user, err := r.userByUsername(username)
	if err != nil {
		return nil, err
	}

	var rows []models.Notification
	err = r.db.Where("target_id = ? AND event_type = ?", user.ID, eventType).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedNotification, len(rows))
	actorCache := make(map[uint]models.UserCompact)
	for i, n := range rows {
		enriched[i] = models.EnrichedNotification{Notification: n}
		if actor, ok := actorCache[n.ActorID]; ok {
			enriched[i].Actor = actor
			continue
		}
		var actor models.User
		if err := r.db.First(&actor, n.ActorID).Error; err == nil {
			compact := actor.ToCompact()
			actorCache[n.ActorID] = compact
			enriched[i].Actor = compact
		}
	}
	return enriched, nil
}

// MarkAllAsRead flips every unread notification of one variant targeted at
// the user. Unknown usernames are a no-op, and repeating the call is safe.
func (r *postgresNotificationRepository) MarkAllAsRead(username, eventType string) error {
	user, err := r.userByUsername(username)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	return r.db.Model(&models.Notification{}).
		Where("target_id = ? AND event_type = ? AND is_read = ?", user.ID, eventType, false).
		Update("is_read", true).Error
}

// HasUnreadNotifications ORs the unread predicate across every variant
func (r *postgresNotificationRepository) HasUnreadNotifications(username string) (bool, error) {
	user, err := r.userByUsername(username)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.Model(&models.Notification{}).
		Where("target_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClearNotificationsForUser deletes the user's notifications across all
// variants. Achievement rows are keyed by the triggering user rather than the
// target; since achievements self-target the two keys select the same rows,
// but the keying is kept explicit.
func (r *postgresNotificationRepository) ClearNotificationsForUser(username string) error {
	user, err := r.userByUsername(username)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	return r.db.
		Where("target_id = ? OR (event_type = ? AND actor_id = ?)", user.ID, models.EventAchievement, user.ID).
		Delete(&models.Notification{}).Error
}
