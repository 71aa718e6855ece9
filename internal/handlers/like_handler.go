package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.LikePost)
	g.DELETE("/likes/:id", h.UnlikePost)
}

// LikePost likes a post. Liking twice is not an error: the second call
// returns the existing edge with 200 instead of 201.
func (h *LikeHandler) LikePost(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	var req models.CreateLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(req.PostID); err != nil {
		return err
	}

	like := &models.Like{
		UserID: actorID,
		PostID: req.PostID,
	}
	created, err := h.likeRepository.CreateLike(like)
	if err != nil {
		return err
	}

	if !created {
		return c.JSON(http.StatusOK, echo.Map{"like": like, "message": "already liked"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"like": like})
}

// UnlikePost removes a like owned by the current user.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid like ID")
	}

	if err := h.likeRepository.DeleteLike(uint(id), actorID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "unliked"})
}
