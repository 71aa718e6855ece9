package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/middleware"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

// currentUserID returns the authenticated user's id, or 0 when the request
// carries no verified claims.
func currentUserID(c echo.Context) uint {
	claims, ok := c.Get(middleware.ContextUserKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}
