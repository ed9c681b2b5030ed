package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/repositories"
	"gorm.io/gorm"
)

// MediaHandler handles the media catalog, watch-lists and ratings
type MediaHandler struct {
	mediaRepository        repositories.MediaRepository
	notificationRepository repositories.NotificationRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository, notifRepo repositories.NotificationRepository) *MediaHandler {
	return &MediaHandler{
		mediaRepository:        mediaRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterMediaRoutes registers media and watch-list routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.CreateMedia)
	g.GET("/media/:id", h.GetMedia)
	g.POST("/media/:id/available", h.AnnounceAvailability)
	g.POST("/media/:id/rating", h.RateMedia)
	g.POST("/watchlist", h.AddToList)
	g.DELETE("/watchlist/:mediaId", h.RemoveFromList)
	g.GET("/watchlist/:list", h.GetList)
}

// CreateMedia registers a catalog row for a movie or show
func (h *MediaHandler) CreateMedia(c echo.Context) error {
	var req models.CreateMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.mediaRepository.GetMediaByExternalID(req.ExternalID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Media already registered")
	}

	media := &models.Media{
		ExternalID: req.ExternalID,
		Title:      req.Title,
		Kind:       req.Kind,
		Poster:     req.Poster,
	}
	if err := h.mediaRepository.CreateMedia(media); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, media)
}

func (h *MediaHandler) GetMedia(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}
	media, err := h.mediaRepository.GetMediaByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, media)
}

// AnnounceAvailability fires the broadcast-style media notification towards
// users holding the media on a watch-list. No listing user is not an error.
func (h *MediaHandler) AnnounceAvailability(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}

	media, err := h.mediaRepository.GetMediaByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notification, err := h.notificationRepository.CreateMediaNotification(currentUserID, media.ID, media.Title, media.Poster)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if notification == nil {
		// Nobody lists this media, or an identical announcement already exists
		return c.JSON(http.StatusOK, echo.Map{"created": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"created": true, "notification": notification})
}

// RateMedia sets the rating on the caller's watch-list entry for the media
func (h *MediaHandler) RateMedia(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}

	var req models.RateMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.mediaRepository.RateMedia(currentUserID, uint(id), req.Rating)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Media is not on any of your lists")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// AddToList puts a media item on one of the caller's watch-lists
func (h *MediaHandler) AddToList(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddToListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.mediaRepository.AddToList(currentUserID, req.MediaID, req.List)
	if err != nil {
		if repositories.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *MediaHandler) RemoveFromList(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	mediaID, err := strconv.ParseUint(c.Param("mediaId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}

	ok, err := h.mediaRepository.RemoveFromList(currentUserID, uint(mediaID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Watch-list entry not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetList returns the caller's entries on one watch-list
func (h *MediaHandler) GetList(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	list := c.Param("list")
	if list != models.ListWatched && list != models.ListWatchLater && list != models.ListFavorite {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown list")
	}

	entries, err := h.mediaRepository.GetUserList(currentUserID, list)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}
