package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notifications/create-notification/:authUser/:targetUser", h.CreateFollowNotification)

	g.GET("/notifications/followNotifications/:username", h.listFor(models.EventNewFollower))
	g.GET("/notifications/replyNotifications/:username", h.listFor(models.EventReply))
	g.GET("/notifications/achievementNotifications/:username", h.listFor(models.EventAchievement))
	g.GET("/notifications/messageNotifications/:username", h.listFor(models.EventMessage))
	g.GET("/notifications/mediaNotifications/:username", h.listFor(models.EventNewMedia))

	g.POST("/notifications/followNotifications/mark-all-as-read/:username", h.markAllReadFor(models.EventNewFollower))
	g.POST("/notifications/replyNotifications/mark-all-as-read/:username", h.markAllReadFor(models.EventReply))
	g.POST("/notifications/achievementNotifications/mark-all-as-read/:username", h.markAllReadFor(models.EventAchievement))
	g.POST("/notifications/messageNotifications/mark-all-as-read/:username", h.markAllReadFor(models.EventMessage))
	g.POST("/notifications/mediaNotifications/mark-all-as-read/:username", h.markAllReadFor(models.EventNewMedia))

	g.GET("/notifications/hasUnread/:username", h.HasUnread)
	g.DELETE("/notifications/clearNotifications/:username", h.ClearNotifications)
}

func (h *NotificationHandler) resolveUserID(username string) (uint, error) {
	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return user.ID, nil
}

// CreateFollowNotification notifies the target user that authUser followed them
func (h *NotificationHandler) CreateFollowNotification(c echo.Context) error {
	actorID, err := h.resolveUserID(c.Param("authUser"))
	if err != nil {
		return err
	}
	targetID, err := h.resolveUserID(c.Param("targetUser"))
	if err != nil {
		return err
	}

	notification, err := h.notificationRepository.CreateFollowNotification(actorID, targetID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, notification)
}

// listFor returns the handler listing one variant's notifications for a user
func (h *NotificationHandler) listFor(eventType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		notifications, err := h.notificationRepository.GetNotificationsForUser(c.Param("username"), eventType)
		if err != nil {
			if repositories.IsNotFound(err) {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, notifications)
	}
}

// markAllReadFor returns the idempotent mark-all-as-read handler for one variant
func (h *NotificationHandler) markAllReadFor(eventType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.notificationRepository.MarkAllAsRead(c.Param("username"), eventType); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
}

// HasUnread reports whether any variant holds an unread notification for the user
func (h *NotificationHandler) HasUnread(c echo.Context) error {
	hasUnread, err := h.notificationRepository.HasUnreadNotifications(c.Param("username"))
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"hasUnread": hasUnread})
}

// ClearNotifications deletes all the user's notifications; idempotent
func (h *NotificationHandler) ClearNotifications(c echo.Context) error {
	if err := h.notificationRepository.ClearNotificationsForUser(c.Param("username")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
