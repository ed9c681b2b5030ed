package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/moviegram/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository covers chats, messages and per-recipient message state
type MessageRepository interface {
	GetOrCreateChat(userA, userB uint) (*models.Chat, error)
	SendMessage(chatID uuid.UUID, senderID, recipientID uint, text string) (*models.Message, error)
	GetChatsForUser(userID uint) ([]models.Chat, error)
	GetMessagesForChat(chatID uuid.UUID, userID uint) ([]models.Message, error)
	MarkChatAsRead(chatID uuid.UUID, userID uint) error
	HideChatForUser(chatID uuid.UUID, userID uint) error
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// GetOrCreateChat returns the chat between two users, creating it on first
// contact. The pair is stored smaller-id-first so the lookup is order-free.
func (r *PostgresMessageRepository) GetOrCreateChat(userA, userB uint) (*models.Chat, error) {
	a, b := userA, userB
	if a > b {
		a, b = b, a
	}

	var chat models.Chat
	err := r.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	chat = models.Chat{ID: uuid.New(), UserAID: a, UserBID: b}
	if err := r.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// SendMessage stores the message and its recipient-state row in one transaction
func (r *PostgresMessageRepository) SendMessage(chatID uuid.UUID, senderID, recipientID uint, text string) (*models.Message, error) {
	msg := models.Message{
		ID:       uuid.New(),
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
		SentAt:   time.Now(),
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		state := models.MessageRecipient{MessageID: msg.ID, RecipientID: recipientID}
		if err := tx.Create(&state).Error; err != nil {
			return err
		}
		// Sending a message un-hides previously cleared history for the
		// recipient going forward; older hidden rows stay hidden.
		return tx.Model(&models.Chat{}).Where("id = ?", chatID).Update("updated_at", msg.SentAt).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *PostgresMessageRepository) GetChatsForUser(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&chats).Error
	return chats, err
}

// GetMessagesForChat returns the chat's messages visible to userID: their own
// sent messages plus received ones they haven't hidden.
func (r *PostgresMessageRepository) GetMessagesForChat(chatID uuid.UUID, userID uint) ([]models.Message, error) {
	hidden := r.db.Table("message_recipients").Select("message_id").
		Where("recipient_id = ? AND hidden = ?", userID, true)

	var messages []models.Message
	err := r.db.Where("chat_id = ? AND (sender_id = ? OR id NOT IN (?))", chatID, userID, hidden).
		Order("sent_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkChatAsRead flips the read flag on every message userID received in the chat
func (r *PostgresMessageRepository) MarkChatAsRead(chatID uuid.UUID, userID uint) error {
	inChat := r.db.Table("messages").Select("id").Where("chat_id = ?", chatID)
	return r.db.Model(&models.MessageRecipient{}).
		Where("recipient_id = ? AND is_read = ? AND message_id IN (?)", userID, false, inChat).
		Update("is_read", true).Error
}

// HideChatForUser hides the chat's received messages for one participant;
// the other participant's view is untouched.
func (r *PostgresMessageRepository) HideChatForUser(chatID uuid.UUID, userID uint) error {
	inChat := r.db.Table("messages").Select("id").Where("chat_id = ?", chatID)
	return r.db.Model(&models.MessageRecipient{}).
		Where("recipient_id = ? AND message_id IN (?)", userID, inChat).
		Update("hidden", true).Error
}
