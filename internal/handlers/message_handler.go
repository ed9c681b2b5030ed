package handlers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/models"
	"github.com/moviegram/backend/internal/repositories"
	"gorm.io/gorm"
)

// MessageHandler handles direct-message chats
type MessageHandler struct {
	messageRepository      repositories.MessageRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository:      messageRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/chats", h.GetChats)
	g.GET("/chats/:id/messages", h.GetMessages)
	g.POST("/chats/:id/read", h.MarkChatAsRead)
	g.DELETE("/chats/:id", h.HideChat)
}

// SendMessage stores a message towards the recipient and fans out the
// message notification, whose target comes from the stored recipient state.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if currentUserID == req.RecipientID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}

	if _, err := h.userRepository.GetUserByID(req.RecipientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	chat, err := h.messageRepository.GetOrCreateChat(currentUserID, req.RecipientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	msg, err := h.messageRepository.SendMessage(chat.ID, currentUserID, req.RecipientID, req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.notificationRepository.CreateMessageNotification(currentUserID, req.RecipientID); err != nil {
		log.Printf("message notification for %s failed: %v", msg.ID, err)
	}

	return c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) GetChats(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	chats, err := h.messageRepository.GetChatsForUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, chats)
}

func (h *MessageHandler) chatIDFromParam(c echo.Context) (uuid.UUID, error) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid chat ID")
	}
	return chatID, nil
}

// GetMessages returns the chat's messages still visible to the caller
func (h *MessageHandler) GetMessages(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	chatID, err := h.chatIDFromParam(c)
	if err != nil {
		return err
	}

	messages, err := h.messageRepository.GetMessagesForChat(chatID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) MarkChatAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	chatID, err := h.chatIDFromParam(c)
	if err != nil {
		return err
	}

	if err := h.messageRepository.MarkChatAsRead(chatID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// HideChat clears the chat on the caller's side only
func (h *MessageHandler) HideChat(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	chatID, err := h.chatIDFromParam(c)
	if err != nil {
		return err
	}

	if err := h.messageRepository.HideChatForUser(chatID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
