package repositories

import (
	"testing"

	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestFollowSelf(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	user := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)

	ok, err := repo.Follow(user.ID, user.ID)
	require.NoError(t, err)
	require.False(t, ok)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestFollowPublicIsApprovedImmediately(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	ok, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, ok)

	isFollowing, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, isFollowing)

	isPending, err := repo.IsFollowPending(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, isPending)
}

func TestFollowPrivateStaysPending(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	carol := testutil.CreateUser(t, db, "carol", models.VisibilityPrivate)

	ok, err := repo.Follow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, ok)

	isPending, err := repo.IsFollowPending(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, isPending)

	isFollowing, err := repo.IsFollowing(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, isFollowing)
}

func TestFollowDuplicateFails(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)
	carol := testutil.CreateUser(t, db, "carol", models.VisibilityPrivate)

	ok, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Second follow on an approved edge
	ok, err = repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, ok)

	// Second follow on a pending edge
	ok, err = repo.Follow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Follow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, ok)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", alice.ID, bob.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestFollowUnknownFollowee(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)

	ok, err := repo.Follow(alice.ID, 9999)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAcceptFollowRequest(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	carol := testutil.CreateUser(t, db, "carol", models.VisibilityPrivate)

	ok, err := repo.Follow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.AcceptFollowRequest(carol.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, ok)

	isFollowing, err := repo.IsFollowing(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, isFollowing)

	isPending, err := repo.IsFollowPending(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, isPending)

	// Accepting again is an idempotent success
	ok, err = repo.AcceptFollowRequest(carol.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Accepting a non-existent edge fails
	ok, err = repo.AcceptFollowRequest(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRejectAndUnfollowRemoveEdge(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	carol := testutil.CreateUser(t, db, "carol", models.VisibilityPrivate)

	ok, err := repo.Follow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.RejectFollowRequest(carol.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, ok)

	isPending, err := repo.IsFollowPending(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, isPending)
	isFollowing, err := repo.IsFollowing(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, isFollowing)

	// Unfollow also removes a pending edge
	ok, err = repo.Follow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Unfollow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Nothing left to unfollow
	ok, err = repo.Unfollow(alice.ID, carol.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestListingsOnlyIncludeApprovedEdges(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	bob := testutil.CreateUser(t, db, "bob", models.VisibilityPublic)
	carol := testutil.CreateUser(t, db, "carol", models.VisibilityPrivate)

	_, err := repo.Follow(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.Follow(alice.ID, carol.ID) // pending
	require.NoError(t, err)

	following, err := repo.GetFollowing(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, bob.ID, following[0].ID)

	followers, err := repo.GetFollowers(bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, alice.ID, followers[0].ID)

	// The pending edge shows up only in the pending listing
	followers, err = repo.GetFollowers(carol.ID)
	require.NoError(t, err)
	require.Empty(t, followers)

	pending, err := repo.GetPendingFollowers(carol.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, alice.ID, pending[0].ID)
}

func TestPublicFollowLifecycle(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	a := testutil.CreateUser(t, db, "a", models.VisibilityPublic)
	b := testutil.CreateUser(t, db, "b", models.VisibilityPublic)

	ok, err := repo.Follow(a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	isFollowing, err := repo.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, isFollowing)

	followers, err := repo.GetFollowers(b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, a.ID, followers[0].ID)

	count, err := repo.GetFollowersCount(b.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	ok, err = repo.Unfollow(a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	followers, err = repo.GetFollowers(b.ID)
	require.NoError(t, err)
	require.Empty(t, followers)
}

func TestPrivateFollowLifecycle(t *testing.T) {
	db := testutil.GetTestDB(t)
	repo := NewPostgresFollowRepository(db)
	a := testutil.CreateUser(t, db, "a", models.VisibilityPublic)
	c := testutil.CreateUser(t, db, "c", models.VisibilityPrivate)

	ok, err := repo.Follow(a.ID, c.ID)
	require.NoError(t, err)
	require.True(t, ok)

	isPending, err := repo.IsFollowPending(a.ID, c.ID)
	require.NoError(t, err)
	require.True(t, isPending)

	pending, err := repo.GetPendingFollowers(c.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, a.ID, pending[0].ID)

	ok, err = repo.AcceptFollowRequest(c.ID, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	isFollowing, err := repo.IsFollowing(a.ID, c.ID)
	require.NoError(t, err)
	require.True(t, isFollowing)

	pending, err = repo.GetPendingFollowers(c.ID)
	require.NoError(t, err)
	require.Empty(t, pending)
}
