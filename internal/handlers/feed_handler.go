package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// trendingWindow bounds the interaction-volume ranking of the trending feed.
const trendingWindow = 24 * time.Hour

// FeedHandler handles the following and trending feed HTTP requests
type FeedHandler struct {
	postRepository repositories.PostRepository
	postHandler    *PostHandler // reuses the author-enrichment cache logic
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, postHandler *PostHandler) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		postHandler:    postHandler,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFollowingFeed)
	g.GET("/feed/trending", h.GetTrendingFeed)
}

// GetFollowingFeed returns posts authored by the profiles the caller
// follows, plus the caller's own posts
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pp := pageParams(c, 10, 50)
	posts, err := h.postRepository.ListFollowingFeed(currentProfileID, pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(h.postHandler.enrichPosts(posts), pp.Limit, func(p EnrichedPost) uint { return p.ID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetTrendingFeed returns recent posts ranked by interaction volume
func (h *FeedHandler) GetTrendingFeed(c echo.Context) error {
	pp := pageParams(c, 10, 50)
	posts, err := h.postRepository.ListTrendingFeed(time.Now().Add(-trendingWindow), pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(h.postHandler.enrichPosts(posts), pp.Limit, func(p EnrichedPost) uint { return p.ID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}
