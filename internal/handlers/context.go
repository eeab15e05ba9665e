package handlers

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func claimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}

// getProfileIDFromContext returns the caller's profile id from the session
// claims, or 0 when unauthenticated.
func getProfileIDFromContext(c echo.Context) uint {
	if claims := claimsFromContext(c); claims != nil {
		return claims.ProfileID
	}
	return 0
}

func getUserIDFromContext(c echo.Context) uint {
	if claims := claimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}
