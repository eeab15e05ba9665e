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
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// EnrichedPost is an aggregate-annotated post with its author attached
type EnrichedPost struct {
	models.PostWithCounts
	Author models.ProfileCompact `json:"author"`
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository         repositories.PostRepository
	profileRepository      repositories.ProfileRepository
	notificationRepository repositories.NotificationRepository
	validator              *rules.InteractionValidator
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	profileRepo repositories.ProfileRepository,
	notifRepo repositories.NotificationRepository,
	v *rules.InteractionValidator,
) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		profileRepository:      profileRepo,
		notificationRepository: notifRepo,
		validator:              v,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/search", h.FindPosts)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/posts/:id/replies", h.GetPostReplies)
	g.GET("/posts/:id/quotes", h.GetPostQuotes)
	g.GET("/profiles/:id/posts", h.GetProfilePosts)
}

// enrichPosts attaches the author profile to each post, caching lookups
// across the page, one query per distinct author.
func (h *PostHandler) enrichPosts(posts []models.PostWithCounts) []EnrichedPost {
	enriched := make([]EnrichedPost, len(posts))
	profileCache := make(map[uint]models.ProfileCompact)

	for i, p := range posts {
		enriched[i] = EnrichedPost{PostWithCounts: p}
		if author, ok := profileCache[p.ProfileID]; ok {
			enriched[i].Author = author
			continue
		}
		profile, err := h.profileRepository.GetProfileByID(p.ProfileID)
		if err == nil {
			compact := profile.ToCompact()
			profileCache[p.ProfileID] = compact
			enriched[i].Author = compact
		}
	}
	return enriched
}

// resolveReferencedPost fetches a referenced post for a reply or quote and
// runs the block checks between the caller and the referenced author.
func (h *PostHandler) resolveReferencedPost(currentProfileID, refID uint, kind string) (*models.Post, error) {
	ref, err := h.postRepository.GetPostByID(refID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "%s post %d not found", kind, refID)
		}
		return nil, err
	}
	if err := h.validator.AssertProfilesDoNotBlockEachOther(currentProfileID, ref.ProfileID); err != nil {
		return nil, err
	}
	return ref, nil
}

// CreatePost creates a new post, optionally as a reply and/or quote
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		UserID:    getUserIDFromContext(c),
		ProfileID: currentProfileID,
		Content:   req.Content,
	}

	var repliedPost, quotedPost *models.Post
	if req.ReplyToPostID != nil {
		ref, err := h.resolveReferencedPost(currentProfileID, *req.ReplyToPostID, "replied")
		if err != nil {
			return httpError(err)
		}
		repliedPost = ref
		post.RepliedPostID = &ref.ID
	}
	if req.QuoteToPostID != nil {
		ref, err := h.resolveReferencedPost(currentProfileID, *req.QuoteToPostID, "quoted")
		if err != nil {
			return httpError(err)
		}
		quotedPost = ref
		post.QuotedPostID = &ref.ID
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if repliedPost != nil && repliedPost.ProfileID != currentProfileID {
		notification := &models.Notification{
			Type:            models.NotificationReply,
			ActorProfileID:  currentProfileID,
			TargetProfileID: repliedPost.ProfileID,
			PostID:          &post.ID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return httpError(err)
		}
	}
	if quotedPost != nil && quotedPost.ProfileID != currentProfileID {
		notification := &models.Notification{
			Type:            models.NotificationQuote,
			ActorProfileID:  currentProfileID,
			TargetProfileID: quotedPost.ProfileID,
			PostID:          &post.ID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			return httpError(err)
		}
	}

	detail := models.PostWithCounts{Post: *post}
	return c.JSON(http.StatusCreated, h.enrichPosts([]models.PostWithCounts{detail})[0])
}

// GetPost retrieves a post with its aggregate counts and author
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	detail, err := h.postRepository.GetPostDetail(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpError(apperrors.E(apperrors.NotFound, "post %d not found", postID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichPosts([]models.PostWithCounts{*detail})[0])
}

// DeletePost deletes a post; only its author may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentProfileID := getProfileIDFromContext(c)
	if currentProfileID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpError(apperrors.E(apperrors.NotFound, "post %d not found", postID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.ProfileID != currentProfileID {
		return httpError(apperrors.E(apperrors.Unauthorized, "you are not the author of this post"))
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetPostReplies lists the replies to a post
func (h *PostHandler) GetPostReplies(c echo.Context) error {
	return h.listRelatedPosts(c, h.postRepository.ListReplies)
}

// GetPostQuotes lists the posts quoting a post
func (h *PostHandler) GetPostQuotes(c echo.Context) error {
	return h.listRelatedPosts(c, h.postRepository.ListQuotes)
}

func (h *PostHandler) listRelatedPosts(c echo.Context, list func(postID uint, cursor uint, limit int) ([]models.PostWithCounts, error)) error {
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

	pp := pageParams(c, 10, 20)
	posts, err := list(uint(postID), pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(h.enrichPosts(posts), pp.Limit, func(p EnrichedPost) uint { return p.ID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetProfilePosts lists the posts authored by a profile
func (h *PostHandler) GetProfilePosts(c echo.Context) error {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}
	if _, err := h.validator.AssertProfileExists(uint(profileID)); err != nil {
		return httpError(err)
	}

	pp := pageParams(c, 10, 50)
	posts, err := h.postRepository.ListByProfile(uint(profileID), pp.Cursor, pp.Limit+1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := newCursorPage(h.enrichPosts(posts), pp.Limit, func(p EnrichedPost) uint { return p.ID })
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// FindPosts composes the optional search filters additively
func (h *PostHandler) FindPosts(c echo.Context) error {
	filter := repositories.PostFilter{
		Content:         c.QueryParam("content"),
		AuthorUsername:  c.QueryParam("author"),
		RepliedToAuthor: c.QueryParam("replied_to_author"),
		QuotedAuthor:    c.QueryParam("quoted_author"),
	}

	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'from' timestamp")
		}
		filter.CreatedAfter = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'to' timestamp")
		}
		filter.CreatedBefore = &t
	}
	if v := c.QueryParam("replied_to_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid replied_to_id")
		}
		uid := uint(id)
		filter.RepliedToPostID = &uid
	}
	if v := c.QueryParam("quoted_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid quoted_id")
		}
		uid := uint(id)
		filter.QuotedPostID = &uid
	}

	posts, err := h.postRepository.FindPosts(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": h.enrichPosts(posts)}})
}
