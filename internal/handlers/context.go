package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/moviegram/backend/internal/models"
)

// getUserIDFromContext extracts the authenticated user's ID from the JWT
// claims the middleware stored on the context; 0 means unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}
