package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	likeRepository repositories.LikeRepository
	tagRepository  repositories.TagRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	tagRepo repositories.TagRepository,
) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		likeRepository: likeRepo,
		tagRepository:  tagRepo,
	}
}

// RegisterPostRoutes registers authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// RegisterPublicPostRoutes registers the public post detail route
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost creates a post for the current user, optionally attaching tags.
func (h *PostHandler) CreatePost(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Tag names are checked before any row is written so a bad name fails
	// the whole request without a half-created post.
	if req.Tags != nil {
		if _, fieldErrs := repositories.NormalizeTagNames(*req.Tags); len(fieldErrs) > 0 {
			return apperrors.Validation(fieldErrs...)
		}
	}

	post := &models.Post{
		Title:   req.Title,
		Content: req.Content,
		UserID:  actorID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return err
	}

	tags := []models.Tag{}
	if req.Tags != nil {
		var err error
		tags, err = h.tagRepository.AttachTags(models.TagOwner{Kind: models.TagOwnerPost, ID: post.ID}, *req.Tags)
		if err != nil {
			return err
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"post": post, "tags": tags})
}

// GetPost returns a post with author, likes and tags.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		return err
	}

	enriched, err := enrichPosts([]models.Post{*post}, h.userRepository, h.likeRepository, h.tagRepository)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"post": enriched[0]})
}

// UpdatePost edits title/content and, when a tags list is supplied, replaces
// the post's tag links with it. Author only; authorship never changes.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post ID")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return apperrors.New(apperrors.Forbidden, "not the author of this post")
	}

	if req.Tags != nil {
		if _, fieldErrs := repositories.NormalizeTagNames(*req.Tags); len(fieldErrs) > 0 {
			return apperrors.Validation(fieldErrs...)
		}
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return err
	}

	var tags []models.Tag
	if req.Tags != nil {
		tags, err = h.tagRepository.ReplaceTags(models.TagOwner{Kind: models.TagOwnerPost, ID: post.ID}, *req.Tags)
		if err != nil {
			return err
		}
	} else {
		tagMap, err := h.tagRepository.GetTagsForPosts([]uint{post.ID})
		if err != nil {
			return err
		}
		tags = tagMap[post.ID]
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	return c.JSON(http.StatusOK, echo.Map{"post": post, "tags": tags})
}

// DeletePost removes a post and its dependent edges. Author only.
func (h *PostHandler) DeletePost(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return apperrors.New(apperrors.Forbidden, "not the author of this post")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "post deleted"})
}
