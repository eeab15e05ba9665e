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

// BlockHandler handles block/unblock HTTP requests and the blocked listing
type BlockHandler struct {
	interactionRepository repositories.InteractionRepository
	validator             *rules.InteractionValidator
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(interactionRepo repositories.InteractionRepository, v *rules.InteractionValidator) *BlockHandler {
	return &BlockHandler{
		interactionRepository: interactionRepo,
		validator:             v,
	}
}

// RegisterBlockRoutes registers block-related routes
func (h *BlockHandler) RegisterBlockRoutes(g *echo.Group) {
	g.POST("/profiles/:id/block", h.BlockProfile)
	g.DELETE("/profiles/:id/block", h.UnblockProfile)
	g.GET("/profiles/blocked", h.GetBlockedProfiles)
}

// BlockProfile blocks another profile. Existing follow edges between the two
// profiles are retracted in both directions first; mutes are left intact.
// Blocking a profile that already blocks the caller is permitted, so there
// is no block-status check here.
func (h *BlockHandler) BlockProfile(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	if _, err := h.validator.AssertProfileExists(currentProfileID); err != nil {
		return httpError(err)
	}
	if _, err := h.validator.AssertProfileExists(uint(targetID)); err != nil {
		return httpError(err)
	}

	blocking, err := h.interactionRepository.HasInteraction(currentProfileID, uint(targetID), models.InteractionBlock)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if blocking {
		return httpError(apperrors.E(apperrors.Conflict, "already blocked this profile"))
	}

	// Sequential, non-transactional by design: the unique index on the edge
	// table is the correctness guard, not this ordering.
	if err := h.interactionRepository.DeleteFollowsBetween(currentProfileID, uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	interaction := &models.ProfileInteraction{
		SourceProfileID: currentProfileID,
		TargetProfileID: uint(targetID),
		Type:            models.InteractionBlock,
	}
	if err := h.interactionRepository.CreateInteraction(interaction); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"blocked": true}})
}

// UnblockProfile removes an existing block edge
func (h *BlockHandler) UnblockProfile(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	if err := h.interactionRepository.DeleteInteraction(currentProfileID, uint(targetID), models.InteractionBlock); err != nil {
		if err == repositories.ErrInteractionNotFound {
			return httpError(apperrors.E(apperrors.NotFound, "this profile is not blocked"))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unblocked_at": time.Now()}})
}

// GetBlockedProfiles lists the profiles the caller has blocked
func (h *BlockHandler) GetBlockedProfiles(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pp := pageParams(c, 10, 50)
	rows, err := h.interactionRepository.ListBySource(currentProfileID, models.InteractionBlock, pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(rows, pp.Limit, func(r repositories.RelatedProfile) uint { return r.InteractionID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}
