package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"consumed/pkg/logger"
	"consumed/pkg/middleware"
	"consumed/services/feed/internal/entity"
	"consumed/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FeedHandler struct {
	feedUseCase        usecase.FeedUseCase
	profileUseCase     usecase.ProfileUseCase
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
	defaultLimit       int
	maxLimit           int
}

func NewFeedHandler(
	feedUseCase usecase.FeedUseCase,
	profileUseCase usecase.ProfileUseCase,
	interactionUseCase usecase.InteractionUseCase,
	logger *logger.Logger,
	defaultLimit, maxLimit int,
) *FeedHandler {
	if defaultLimit <= 0 {
		defaultLimit = 15
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &FeedHandler{
		feedUseCase:        feedUseCase,
		profileUseCase:     profileUseCase,
		interactionUseCase: interactionUseCase,
		logger:             logger,
		defaultLimit:       defaultLimit,
		maxLimit:           maxLimit,
	}
}

type VoteRequest struct {
	Option string `json:"option" binding:"required"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// GetFeed godoc
// @Summary      Get social feed
// @Description  Posts and open prediction pools merged newest first, annotated for the caller. A page shorter than limit means there are no more pages.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 15, at most FEED_MAX_LIMIT)"
// @Param        offset query int false "Number of items to skip"
// @Success      200  {array}   entity.FeedItem
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /social-feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	viewer, ok := h.resolveViewer(c)
	if !ok {
		return
	}

	limit := h.defaultLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	// A capped page would read as the end of the feed, so oversized limits are refused.
	if limit > h.maxLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("limit must not exceed %d", h.maxLimit)})
		return
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	if offset > math.MaxInt-limit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset out of range"})
		return
	}

	items, err := h.feedUseCase.GetFeed(c.Request.Context(), viewer.ID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  LikeResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *FeedHandler) ToggleLike(c *gin.Context) {
	viewer, ok := h.resolveViewer(c)
	if !ok {
		return
	}

	postID := c.Param("id")
	if !isUUID(postID) {
		h.respondError(c, entity.ErrPostNotFound)
		return
	}

	liked, likes, err := h.interactionUseCase.ToggleLike(c.Request.Context(), viewer.ID, postID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Liked: liked, Likes: likes})
}

// SubmitPrediction godoc
// @Summary      Vote on a prediction pool
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Pool ID"
// @Param        request body VoteRequest true "Chosen option"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /predictions/{id}/vote [post]
func (h *FeedHandler) SubmitPrediction(c *gin.Context) {
	viewer, ok := h.resolveViewer(c)
	if !ok {
		return
	}

	poolID := c.Param("id")
	if !isUUID(poolID) {
		h.respondError(c, entity.ErrPoolNotFound)
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.interactionUseCase.SubmitPrediction(c.Request.Context(), viewer.ID, poolID, req.Option); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

// resolveViewer bootstraps the caller's profile. It writes the error
// response itself and reports false when the request cannot continue.
func (h *FeedHandler) resolveViewer(c *gin.Context) (*entity.AppUser, bool) {
	identity := entity.Identity{
		UserID: c.GetString(middleware.ContextUserID),
		Email:  c.GetString(middleware.ContextUserEmail),
	}
	if identity.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	viewer, err := h.profileUseCase.EnsureProfile(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return viewer, true
}

// isUUID reports whether id can name a row; anything else cannot exist.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (h *FeedHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, entity.ErrPostNotFound), errors.Is(err, entity.ErrPoolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrAlreadyVoted), errors.Is(err, entity.ErrPoolClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
