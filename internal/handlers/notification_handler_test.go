package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/repositories"
	"github.com/moviegram/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNotificationHandler(t *testing.T) (*gorm.DB, *echo.Echo) {
	db := testutil.GetTestDB(t)
	e := echo.New()
	h := NewNotificationHandler(
		repositories.NewPostgresNotificationRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
	h.RegisterNotificationRoutes(e.Group(""))
	return db, e
}

func TestCreateFollowNotificationEndpoint(t *testing.T) {
	db, e := setupNotificationHandler(t)
	testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	req := httptest.NewRequest(http.MethodPost, "/notifications/create-notification/alice/bob", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var n models.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &n))
	require.Equal(t, models.EventNewFollower, n.EventType)
	require.Contains(t, n.Message, "começou-te a seguir")

	req = httptest.NewRequest(http.MethodGet, "/notifications/followNotifications/bob", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.EnrichedNotification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "alice", list[0].Actor.Username)
}

func TestCreateFollowNotificationUnknownTarget(t *testing.T) {
	db, e := setupNotificationHandler(t)
	testutil.CreateUser(t, db, "alice", models.VisibilityPublic)

	req := httptest.NewRequest(http.MethodPost, "/notifications/create-notification/alice/ghost", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListNotificationsUnknownUser(t *testing.T) {
	_, e := setupNotificationHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/notifications/followNotifications/ghost", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHasUnreadLifecycle(t *testing.T) {
	db, e := setupNotificationHandler(t)
	testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	hasUnread := func() bool {
		req := httptest.NewRequest(http.MethodGet, "/notifications/hasUnread/bob", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body["hasUnread"]
	}

	require.False(t, hasUnread())

	req := httptest.NewRequest(http.MethodPost, "/notifications/create-notification/alice/bob", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, hasUnread())

	req = httptest.NewRequest(http.MethodPost, "/notifications/followNotifications/mark-all-as-read/bob", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, hasUnread())

	// Marking again stays OK
	req = httptest.NewRequest(http.MethodPost, "/notifications/followNotifications/mark-all-as-read/bob", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestClearNotificationsEndpoint(t *testing.T) {
	db, e := setupNotificationHandler(t)
	testutil.CreateUser(t, db, "alice", models.VisibilityPublic)
	testutil.CreateUser(t, db, "bob", models.VisibilityPublic)

	req := httptest.NewRequest(http.MethodPost, "/notifications/create-notification/alice/bob", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/notifications/clearNotifications/bob", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/notifications/followNotifications/bob", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.EnrichedNotification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Empty(t, list)
}
