package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// httpError maps a core error to its HTTP status at the boundary.
func httpError(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(statusOf(appErr.Kind), appErr.Message)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The unique composite index fired on a check-then-act race.
		return echo.NewHTTPError(http.StatusConflict, "resource already exists")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func statusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.SelfInteraction:
		return http.StatusBadRequest
	case apperrors.Blocked:
		return http.StatusForbidden
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.Unauthorized:
		return http.StatusForbidden
	case apperrors.AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
