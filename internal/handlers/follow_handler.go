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

// FollowHandler handles follow/unfollow HTTP requests and the
// follower/following listings
type FollowHandler struct {
	interactionRepository  repositories.InteractionRepository
	notificationRepository repositories.NotificationRepository
	validator              *rules.InteractionValidator
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(interactionRepo repositories.InteractionRepository, notifRepo repositories.NotificationRepository, v *rules.InteractionValidator) *FollowHandler {
	return &FollowHandler{
		interactionRepository:  interactionRepo,
		notificationRepository: notifRepo,
		validator:              v,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/profiles/:id/follow", h.FollowProfile)
	g.DELETE("/profiles/:id/follow", h.UnfollowProfile)
	g.GET("/profiles/:id/followers", h.GetFollowers)
	g.GET("/profiles/:id/following", h.GetFollowing)
}

// FollowProfile follows another profile
func (h *FollowHandler) FollowProfile(c echo.Context) error {
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
	if err := h.validator.AssertProfilesDoNotBlockEachOther(currentProfileID, uint(targetID)); err != nil {
		return httpError(err)
	}
	if _, err := h.validator.AssertProfileExists(currentProfileID); err != nil {
		return httpError(err)
	}
	if _, err := h.validator.AssertProfileExists(uint(targetID)); err != nil {
		return httpError(err)
	}

	following, err := h.interactionRepository.HasInteraction(currentProfileID, uint(targetID), models.InteractionFollow)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if following {
		return httpError(apperrors.E(apperrors.Conflict, "already following this profile"))
	}

	interaction := &models.ProfileInteraction{
		SourceProfileID: currentProfileID,
		TargetProfileID: uint(targetID),
		Type:            models.InteractionFollow,
	}
	if err := h.interactionRepository.CreateInteraction(interaction); err != nil {
		return httpError(err)
	}

	notification := &models.Notification{
		Type:            models.NotificationFollow,
		ActorProfileID:  currentProfileID,
		TargetProfileID: uint(targetID),
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowProfile removes an existing follow edge
func (h *FollowHandler) UnfollowProfile(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	if err := h.interactionRepository.DeleteInteraction(currentProfileID, uint(targetID), models.InteractionFollow); err != nil {
		if err == repositories.ErrInteractionNotFound {
			return httpError(apperrors.E(apperrors.NotFound, "not following this profile"))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unfollowed_at": time.Now()}})
}

// GetFollowers lists the profiles following the given profile
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}
	if _, err := h.validator.AssertProfileExists(uint(profileID)); err != nil {
		return httpError(err)
	}

	pp := pageParams(c, 10, 50)
	rows, err := h.interactionRepository.ListByTarget(uint(profileID), models.InteractionFollow, pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(rows, pp.Limit, func(r repositories.RelatedProfile) uint { return r.InteractionID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetFollowing lists the profiles the given profile follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}
	if _, err := h.validator.AssertProfileExists(uint(profileID)); err != nil {
		return httpError(err)
	}

	pp := pageParams(c, 10, 50)
	rows, err := h.interactionRepository.ListBySource(uint(profileID), models.InteractionFollow, pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(rows, pp.Limit, func(r repositories.RelatedProfile) uint { return r.InteractionID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}
