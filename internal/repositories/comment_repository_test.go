package repositories

import (
	"testing"

	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentsAndReplies(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	media := models.Media{ExternalID: "tt0111161", Title: "The Shawshank Redemption", Kind: models.MediaKindMovie}
	require.NoError(t, db.Create(&media).Error)

	top := models.Comment{MediaID: media.ID, UserID: alice.ID, Text: "Obra-prima"}
	require.NoError(t, repo.CreateComment(&top))
	reply := models.Comment{MediaID: media.ID, UserID: bob.ID, ParentID: &top.ID, Text: "Concordo"}
	require.NoError(t, repo.CreateComment(&reply))

	// Replies don't show up at the top level
	comments, err := repo.GetCommentsForMedia(media.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, top.ID, comments[0].ID)

	replies, err := repo.GetReplies(top.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	require.Equal(t, "Concordo", replies[0].Text)
}

func TestDeleteCommentCascades(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	media := models.Media{ExternalID: "tt1375666", Title: "Inception", Kind: models.MediaKindMovie}
	require.NoError(t, db.Create(&media).Error)

	top := models.Comment{MediaID: media.ID, UserID: alice.ID, Text: "Que viagem"}
	require.NoError(t, repo.CreateComment(&top))
	reply := models.Comment{MediaID: media.ID, UserID: bob.ID, ParentID: &top.ID, Text: "Perdi-me"}
	require.NoError(t, repo.CreateComment(&reply))
	_, err := repo.LikeComment(bob.ID, top.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteComment(top.ID))

	_, err = repo.GetCommentByID(top.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetCommentByID(reply.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.GetLikesCount(top.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestLikeCommentOncePerUser(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	media := models.Media{ExternalID: "tt0903747", Title: "Breaking Bad", Kind: models.MediaKindTV}
	require.NoError(t, db.Create(&media).Error)
	comment := models.Comment{MediaID: media.ID, UserID: alice.ID, Text: "Melhor série"}
	require.NoError(t, repo.CreateComment(&comment))

	liked, err := repo.LikeComment(bob.ID, comment.ID)
	require.NoError(t, err)
	require.True(t, liked)

	liked, err = repo.LikeComment(bob.ID, comment.ID)
	require.NoError(t, err)
	require.False(t, liked)

	count, err := repo.GetLikesCount(comment.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	removed, err := repo.UnlikeComment(bob.ID, comment.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.UnlikeComment(bob.ID, comment.ID)
	require.NoError(t, err)
	require.False(t, removed)
}
