package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/nano-social/backend/internal/apperrors"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/rules"
	"github.com/labstack/echo/v4"
)

// MuteHandler handles mute/unmute HTTP requests and the muted listing
type MuteHandler struct {
	interactionRepository repositories.InteractionRepository
	validator             *rules.InteractionValidator
}

// NewMuteHandler creates a new MuteHandler
func NewMuteHandler(interactionRepo repositories.InteractionRepository, v *rules.InteractionValidator) *MuteHandler {
	return &MuteHandler{
		interactionRepository: interactionRepo,
		validator:             v,
	}
}

// RegisterMuteRoutes registers mute-related routes
func (h *MuteHandler) RegisterMuteRoutes(g *echo.Group) {
	g.POST("/profiles/:id/mute", h.MuteProfile)
	g.DELETE("/profiles/:id/mute", h.UnmuteProfile)
	g.GET("/profiles/muted", h.GetMutedProfiles)
}

// MuteProfile mutes another profile. Muting a profile that blocks the caller
// must stay possible, so there is no block-status check here.
func (h *MuteHandler) MuteProfile(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	if err := h.validator.AssertProfilesAreNotSame(currentProfileID, uint(targetID)); err != nil {
		return httpError(err)
	}
	if _, err := h.validator.AssertProfileExists(currentProfileID); err != nil {
		return httpError(err)
	}
	if _, err := h.validator.AssertProfileExists(uint(targetID)); err != nil {
		return httpError(err)
	}

	muted, err := h.interactionRepository.HasInteraction(currentProfileID, uint(targetID), models.InteractionMute)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if muted {
		return httpError(apperrors.E(apperrors.Conflict, "already muted this profile"))
	}

	interaction := &models.ProfileInteraction{
		SourceProfileID: currentProfileID,
		TargetProfileID: uint(targetID),
		Type:            models.InteractionMute,
	}
	if err := h.interactionRepository.CreateInteraction(interaction); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"muted": true}})
}

// UnmuteProfile removes an existing mute edge. A missing edge is a Conflict
// here, unlike unfollow; callers depend on the distinction.
func (h *MuteHandler) UnmuteProfile(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	if err := h.interactionRepository.DeleteInteraction(currentProfileID, uint(targetID), models.InteractionMute); err != nil {
		if err == repositories.ErrInteractionNotFound {
			return httpError(apperrors.E(apperrors.Conflict, "this profile is not muted"))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unmuted_at": time.Now()}})
}

// GetMutedProfiles lists the profiles the caller has muted
func (h *MuteHandler) GetMutedProfiles(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pp := pageParams(c, 10, 50)
	rows, err := h.interactionRepository.ListBySource(currentProfileID, models.InteractionMute, pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(rows, pp.Limit, func(r repositories.RelatedProfile) uint { return r.InteractionID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}
