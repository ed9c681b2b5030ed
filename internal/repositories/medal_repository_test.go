package repositories

import (
	"testing"

	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAwardMedalIsIdempotent(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMedalRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)

	medal := models.Medal{Name: "Cinéfilo", Description: "Perfect quiz score"}
	require.NoError(t, repo.CreateMedal(&medal))

	awarded, err := repo.AwardMedal(alice.ID, medal.ID)
	require.NoError(t, err)
	require.True(t, awarded)

	awarded, err = repo.AwardMedal(alice.ID, medal.ID)
	require.NoError(t, err)
	require.False(t, awarded)

	var count int64
	require.NoError(t, db.Model(&models.UserMedal{}).
		Where("user_id = ?", alice.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAwardMedalUnknownMedal(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMedalRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)

	_, err := repo.AwardMedal(alice.ID, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetUserMedals(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMedalRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	critic := models.Medal{Name: "Crítico"}
	marathon := models.Medal{Name: "Maratonista"}
	require.NoError(t, repo.CreateMedal(&critic))
	require.NoError(t, repo.CreateMedal(&marathon))

	_, err := repo.AwardMedal(alice.ID, critic.ID)
	require.NoError(t, err)
	_, err = repo.AwardMedal(bob.ID, marathon.ID)
	require.NoError(t, err)

	medals, err := repo.GetUserMedals(alice.ID)
	require.NoError(t, err)
	require.Len(t, medals, 1)
	require.Equal(t, "Crítico", medals[0].Name)

	medals, err = repo.GetUserMedals(99)
	require.NoError(t, err)
	require.Empty(t, medals)
}

func TestGetMedalByName(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresMedalRepository(db)

	medal := models.Medal{Name: "Cinéfilo"}
	require.NoError(t, repo.CreateMedal(&medal))

	found, err := repo.GetMedalByName("Cinéfilo")
	require.NoError(t, err)
	require.Equal(t, medal.ID, found.ID)

	_, err = repo.GetMedalByName("missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
