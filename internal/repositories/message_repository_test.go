package repositories

import (
	"testing"

	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateChatIsOrderFree(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	first, err := repo.GetOrCreateChat(alice.ID, bob.ID)
	require.NoError(t, err)
	second, err := repo.GetOrCreateChat(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Chat{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSendAndListMessages(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	chat, err := repo.GetOrCreateChat(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = repo.SendMessage(chat.ID, alice.ID, bob.ID, "olá")
	require.NoError(t, err)
	_, err = repo.SendMessage(chat.ID, bob.ID, alice.ID, "olá de volta")
	require.NoError(t, err)

	for _, userID := range []uint{alice.ID, bob.ID} {
		messages, err := repo.GetMessagesForChat(chat.ID, userID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		require.Equal(t, "olá", messages[0].Text)
	}

	chats, err := repo.GetChatsForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	require.Equal(t, chat.ID, chats[0].ID)
}

func TestMarkChatAsRead(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	chat, err := repo.GetOrCreateChat(alice.ID, bob.ID)
	require.NoError(t, err)
	msg, err := repo.SendMessage(chat.ID, alice.ID, bob.ID, "olá")
	require.NoError(t, err)

	var state models.MessageRecipient
	require.NoError(t, db.Where("message_id = ?", msg.ID).First(&state).Error)
	require.False(t, state.IsRead)

	require.NoError(t, repo.MarkChatAsRead(chat.ID, bob.ID))
	require.NoError(t, db.Where("message_id = ?", msg.ID).First(&state).Error)
	require.True(t, state.IsRead)

	// Repeating is safe
	require.NoError(t, repo.MarkChatAsRead(chat.ID, bob.ID))
}

func TestHideChatOnlyAffectsOneParticipant(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	chat, err := repo.GetOrCreateChat(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.SendMessage(chat.ID, alice.ID, bob.ID, "olá")
	require.NoError(t, err)

	require.NoError(t, repo.HideChatForUser(chat.ID, bob.ID))

	// Bob no longer sees the received message
	messages, err := repo.GetMessagesForChat(chat.ID, bob.ID)
	require.NoError(t, err)
	require.Empty(t, messages)

	// Alice still sees what she sent
	messages, err = repo.GetMessagesForChat(chat.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	// New messages show up for bob again
	_, err = repo.SendMessage(chat.ID, alice.ID, bob.ID, "ainda aí?")
	require.NoError(t, err)
	messages, err = repo.GetMessagesForChat(chat.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "ainda aí?", messages[0].Text)
}
