package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/repositories"
)

// Medal awarded for a perfect quiz score, when it exists in the catalog
const perfectScoreMedal = "Cinéfilo"

// QuizHandler handles quizzes and quiz attempts
type QuizHandler struct {
	quizRepository         repositories.QuizRepository
	medalRepository        repositories.MedalRepository
	notificationRepository repositories.NotificationRepository
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(quizRepo repositories.QuizRepository, medalRepo repositories.MedalRepository, notifRepo repositories.NotificationRepository) *QuizHandler {
	return &QuizHandler{
		quizRepository:         quizRepo,
		medalRepository:        medalRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterQuizRoutes registers quiz-related routes
func (h *QuizHandler) RegisterQuizRoutes(g *echo.Group) {
	g.POST("/quizzes", h.CreateQuiz)
	g.GET("/media/:id/quizzes", h.GetQuizzesForMedia)
	g.POST("/quizzes/:id/submit", h.SubmitQuiz)
	g.GET("/profile/quiz-attempts", h.GetMyAttempts)
}

func (h *QuizHandler) CreateQuiz(c echo.Context) error {
	var req models.CreateQuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quiz := &models.Quiz{Title: req.Title, MediaID: req.MediaID}
	for _, q := range req.Questions {
		if q.Answer >= len(q.Options) {
			return echo.NewHTTPError(http.StatusBadRequest, "Answer index out of range")
		}
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Text:    q.Text,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}

	if err := h.quizRepository.CreateQuiz(c.Request().Context(), quiz); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) GetQuizzesForMedia(c echo.Context) error {
	mediaID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}

	quizzes, err := h.quizRepository.GetQuizzesForMedia(c.Request().Context(), uint(mediaID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, quizzes)
}

// SubmitQuiz scores the caller's answers. A perfect score awards the quiz
// medal when the catalog has one, which in turn fans out an achievement
// notification.
func (h *QuizHandler) SubmitQuiz(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SubmitQuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	attempt, err := h.quizRepository.SubmitAttempt(c.Request().Context(), currentUserID, c.Param("id"), req.Answers)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	if attempt.Total > 0 && attempt.Score == attempt.Total {
		if medal, err := h.medalRepository.GetMedalByName(perfectScoreMedal); err == nil {
			awarded, err := h.medalRepository.AwardMedal(currentUserID, medal.ID)
			if err != nil {
				log.Printf("awarding %s failed: %v", perfectScoreMedal, err)
			} else if awarded {
				if _, err := h.notificationRepository.CreateAchievementNotification(currentUserID, medal.ID); err != nil {
					log.Printf("achievement notification for medal %d failed: %v", medal.ID, err)
				}
			}
		}
	}

	return c.JSON(http.StatusOK, attempt)
}

func (h *QuizHandler) GetMyAttempts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	attempts, err := h.quizRepository.GetAttemptsForUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, attempts)
}
