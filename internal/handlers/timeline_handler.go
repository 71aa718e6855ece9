package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// TimelineHandler serves the home feed.
type TimelineHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	likeRepository   repositories.LikeRepository
	tagRepository    repositories.TagRepository
}

// NewTimelineHandler creates a new TimelineHandler
func NewTimelineHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	tagRepo repositories.TagRepository,
) *TimelineHandler {
	return &TimelineHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		likeRepository:   likeRepo,
		tagRepository:    tagRepo,
	}
}

// RegisterTimelineRoutes registers timeline-related routes
func (h *TimelineHandler) RegisterTimelineRoutes(g *echo.Group) {
	g.GET("/timeline", h.GetTimeline)
}

// GetTimeline computes the feed at read time: posts by the current user and
// everyone they follow, newest-created first. Following nobody still yields
// the user's own posts; no posts at all yields an empty list, never an error.
func (h *TimelineHandler) GetTimeline(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(actorID)
	if err != nil {
		return err
	}
	authorIDs := append(followingIDs, actorID)

	posts, err := h.postRepository.GetPostsByAuthorIDs(authorIDs)
	if err != nil {
		return err
	}

	enriched, err := enrichPosts(posts, h.userRepository, h.likeRepository, h.tagRepository)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": enriched})
}
