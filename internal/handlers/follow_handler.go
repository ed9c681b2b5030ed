package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/repositories"
)

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow", h.Follow)
	g.DELETE("/unfollow", h.Unfollow)
	g.GET("/followers/:id", h.GetFollowers)
	g.GET("/following/:id", h.GetFollowing)
	g.GET("/follow-requests/:id", h.GetPendingFollowers)
	g.POST("/follow-requests/accept", h.AcceptFollowRequest)
	g.POST("/follow-requests/reject", h.RejectFollowRequest)
}

func followPairFromQuery(c echo.Context) (uint, uint, error) {
	followerID, err := strconv.ParseUint(c.QueryParam("followerId"), 10, 32)
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid followerId")
	}
	followeeID, err := strconv.ParseUint(c.QueryParam("followeeId"), 10, 32)
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid followeeId")
	}
	return uint(followerID), uint(followeeID), nil
}

// Follow creates a follow edge; approved immediately for public profiles,
// pending otherwise
func (h *FollowHandler) Follow(c echo.Context) error {
	followerID, followeeID, err := followPairFromQuery(c)
	if err != nil {
		return err
	}

	ok, err := h.followRepository.Follow(followerID, followeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		if followerID == followeeID {
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
		}
		isPending, _ := h.followRepository.IsFollowPending(followerID, followeeID)
		if isPending {
			return echo.NewHTTPError(http.StatusConflict, "A follow request is already pending")
		}
		isFollowing, _ := h.followRepository.IsFollowing(followerID, followeeID)
		if isFollowing {
			return echo.NewHTTPError(http.StatusConflict, "Already following this user")
		}
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	// Notify even when the edge landed pending: for a private profile this
	// is the signal that a request is waiting. The edge stays if this fails.
	if _, err := h.notificationRepository.CreateFollowNotification(followerID, followeeID); err != nil {
		log.Printf("follow notification for %d -> %d failed: %v", followerID, followeeID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Unfollow removes the edge whatever its state
func (h *FollowHandler) Unfollow(c echo.Context) error {
	followerID, followeeID, err := followPairFromQuery(c)
	if err != nil {
		return err
	}

	ok, err := h.followRepository.Unfollow(followerID, followeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "No follow relationship to remove")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	users, err := h.followRepository.GetFollowers(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	users, err := h.followRepository.GetFollowing(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// GetPendingFollowers lists the follow requests awaiting this user's decision
func (h *FollowHandler) GetPendingFollowers(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	users, err := h.followRepository.GetPendingFollowers(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// AcceptFollowRequest approves a pending edge; followee accepts follower
func (h *FollowHandler) AcceptFollowRequest(c echo.Context) error {
	followerID, followeeID, err := followPairFromQuery(c)
	if err != nil {
		return err
	}

	ok, err := h.followRepository.AcceptFollowRequest(followeeID, followerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Follow request not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RejectFollowRequest deletes the edge
func (h *FollowHandler) RejectFollowRequest(c echo.Context) error {
	followerID, followeeID, err := followPairFromQuery(c)
	if err != nil {
		return err
	}

	ok, err := h.followRepository.RejectFollowRequest(followeeID, followerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Follow request not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
