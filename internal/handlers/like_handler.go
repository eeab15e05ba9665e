package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/nano-social/backend/internal/apperrors"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/rules"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles like/unlike and repost/unrepost HTTP requests
type LikeHandler struct {
	postInteractionRepository repositories.PostInteractionRepository
	postRepository            repositories.PostRepository
	notificationRepository    repositories.NotificationRepository
	validator                 *rules.InteractionValidator
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	postInteractionRepo repositories.PostInteractionRepository,
	postRepo repositories.PostRepository,
	notifRepo repositories.NotificationRepository,
	v *rules.InteractionValidator,
) *LikeHandler {
	return &LikeHandler{
		postInteractionRepository: postInteractionRepo,
		postRepository:            postRepo,
		notificationRepository:    notifRepo,
		validator:                 v,
	}
}

// RegisterLikeRoutes registers like- and repost-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.POST("/posts/:id/repost", h.RepostPost)
	g.DELETE("/posts/:id/repost", h.UnrepostPost)
	g.GET("/posts/:id/likes", h.GetPostLikes)
	g.GET("/posts/:id/reposts", h.GetPostReposts)
}

// loadPostForInteraction loads the target post and runs the block checks
// between the caller and the post's author.
func (h *LikeHandler) loadPostForInteraction(c echo.Context, currentProfileID uint) (*models.Post, error) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpError(apperrors.E(apperrors.NotFound, "post %d not found", postID))
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.validator.AssertProfilesDoNotBlockEachOther(currentProfileID, post.ProfileID); err != nil {
		return nil, httpError(err)
	}
	return post, nil
}

// LikePost likes a post. Liking twice is a Conflict.
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	post, err := h.loadPostForInteraction(c, currentProfileID)
	if err != nil {
		return err
	}

	_, err = h.postInteractionRepository.GetPostInteraction(currentProfileID, post.ID, models.InteractionLike)
	if err == nil {
		return httpError(apperrors.E(apperrors.Conflict, "post already liked"))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	interaction := &models.PostInteraction{
		UserID:    getUserIDFromContext(c),
		ProfileID: currentProfileID,
		PostID:    post.ID,
		Type:      models.InteractionLike,
	}
	if err := h.postInteractionRepository.CreatePostInteraction(interaction); err != nil {
		return httpError(err)
	}

	if currentProfileID != post.ProfileID {
		notification := &models.Notification{
			Type:            models.NotificationLike,
			ActorProfileID:  currentProfileID,
			TargetProfileID: post.ProfileID,
			PostID:          &post.ID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": interaction})
}

// UnlikePost removes a like. A missing like is a Conflict, unlike unrepost.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postInteractionRepository.DeletePostInteraction(currentProfileID, uint(postID), models.InteractionLike); err != nil {
		if err == repositories.ErrInteractionNotFound {
			return httpError(apperrors.E(apperrors.Conflict, "post is not liked"))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unliked_at": time.Now()}})
}

// RepostPost reposts a post. Reposting twice returns the original repost's
// timestamp without an error; this asymmetry with Like is deliberate.
func (h *LikeHandler) RepostPost(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	post, err := h.loadPostForInteraction(c, currentProfileID)
	if err != nil {
		return err
	}

	existing, err := h.postInteractionRepository.GetPostInteraction(currentProfileID, post.ID, models.InteractionRepost)
	if err == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"reposted_at": existing.CreatedAt}})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	interaction := &models.PostInteraction{
		UserID:    getUserIDFromContext(c),
		ProfileID: currentProfileID,
		PostID:    post.ID,
		Type:      models.InteractionRepost,
	}
	if err := h.postInteractionRepository.CreatePostInteraction(interaction); err != nil {
		return httpError(err)
	}

	if currentProfileID != post.ProfileID {
		notification := &models.Notification{
			Type:            models.NotificationRepost,
			ActorProfileID:  currentProfileID,
			TargetProfileID: post.ProfileID,
			PostID:          &post.ID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"reposted_at": interaction.CreatedAt}})
}

// UnrepostPost removes a repost. A missing repost is a NotFound.
func (h *LikeHandler) UnrepostPost(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postInteractionRepository.DeletePostInteraction(currentProfileID, uint(postID), models.InteractionRepost); err != nil {
		if err == repositories.ErrInteractionNotFound {
			return httpError(apperrors.E(apperrors.NotFound, "post is not reposted"))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unreposted_at": time.Now()}})
}

// GetPostLikes lists the profiles that liked a post
func (h *LikeHandler) GetPostLikes(c echo.Context) error {
	return h.listPostInteractions(c, models.InteractionLike)
}

// GetPostReposts lists the profiles that reposted a post
func (h *LikeHandler) GetPostReposts(c echo.Context) error {
	return h.listPostInteractions(c, models.InteractionRepost)
}

func (h *LikeHandler) listPostInteractions(c echo.Context, interactionType models.PostInteractionType) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(uint(postID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpError(apperrors.E(apperrors.NotFound, "post %d not found", postID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pp := pageParams(c, 10, 50)
	rows, err := h.postInteractionRepository.ListProfilesByPost(uint(postID), interactionType, pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(rows, pp.Limit, func(r repositories.RelatedProfile) uint { return r.InteractionID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}
