package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/repositories"
	"gorm.io/gorm"
)

// MedalHandler handles the gamification ledger
type MedalHandler struct {
	medalRepository        repositories.MedalRepository
	notificationRepository repositories.NotificationRepository
}

// NewMedalHandler creates a new MedalHandler
func NewMedalHandler(medalRepo repositories.MedalRepository, notifRepo repositories.NotificationRepository) *MedalHandler {
	return &MedalHandler{
		medalRepository:        medalRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterMedalRoutes registers medal-related routes
func (h *MedalHandler) RegisterMedalRoutes(g *echo.Group) {
	g.POST("/medals", h.CreateMedal)
	g.GET("/medals", h.ListMedals)
	g.POST("/medals/:id/award", h.AwardMedal)
	g.GET("/users/:id/medals", h.GetUserMedals)
}

func (h *MedalHandler) CreateMedal(c echo.Context) error {
	var req models.CreateMedalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.medalRepository.GetMedalByName(req.Name); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Medal already exists")
	}

	medal := &models.Medal{Name: req.Name, Description: req.Description, Icon: req.Icon}
	if err := h.medalRepository.CreateMedal(medal); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, medal)
}

func (h *MedalHandler) ListMedals(c echo.Context) error {
	medals, err := h.medalRepository.ListMedals()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, medals)
}

// AwardMedal grants a medal to the authenticated user; a fresh grant also
// fans out the achievement self-notification. Repeat awards are quiet no-ops.
func (h *MedalHandler) AwardMedal(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	medalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid medal ID")
	}

	awarded, err := h.medalRepository.AwardMedal(currentUserID, uint(medalID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Medal not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if awarded {
		if _, err := h.notificationRepository.CreateAchievementNotification(currentUserID, uint(medalID)); err != nil {
			log.Printf("achievement notification for medal %d failed: %v", medalID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"awarded": awarded})
}

func (h *MedalHandler) GetUserMedals(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	medals, err := h.medalRepository.GetUserMedals(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, medals)
}
