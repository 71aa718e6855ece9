package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// FollowHandler handles follow graph HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers routes that mutate the follow graph
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follows", h.Follow)
	g.DELETE("/follows/:id", h.Unfollow)
}

// RegisterListingRoutes registers the public follower/following listings
func (h *FollowHandler) RegisterListingRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// Follow creates a follow edge from the current user to the target.
func (h *FollowHandler) Follow(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	var req models.CreateFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.FollowingID == actorID {
		return apperrors.New(apperrors.InvalidOperation, "cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(req.FollowingID); err != nil {
		return err
	}

	follow := &models.Follow{
		FollowerID:  actorID,
		FollowingID: req.FollowingID,
	}
	// No pre-check: the unique index decides the winner under concurrency.
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, follow)
}

// Unfollow removes a follow edge owned by the current user as follower.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid follow ID")
	}

	if err := h.followRepository.DeleteFollow(uint(id), actorID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "unfollowed"})
}

// GetFollowers lists the users following :id, newest edge first.
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.listEdges(c, true)
}

// GetFollowing lists the users :id follows, newest edge first.
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.listEdges(c, false)
}

func (h *FollowHandler) listEdges(c echo.Context, followers bool) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	var follows []models.Follow
	if followers {
		follows, err = h.followRepository.GetFollowers(uint(id))
	} else {
		follows, err = h.followRepository.GetFollowing(uint(id))
	}
	if err != nil {
		return err
	}

	counterpartIDs := make([]uint, len(follows))
	for i, f := range follows {
		counterpartIDs[i] = counterpartID(f, uint(id))
	}
	users, err := h.userRepository.GetUsersByIDs(counterpartIDs)
	if err != nil {
		return err
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		userMap[users[i].ID] = users[i].ToCompact()
	}

	edges := make([]models.FollowEdge, 0, len(follows))
	for _, f := range follows {
		edges = append(edges, models.FollowEdge{
			ID:        f.ID,
			User:      userMap[counterpartID(f, uint(id))],
			CreatedAt: f.CreatedAt,
		})
	}

	if followers {
		return c.JSON(http.StatusOK, echo.Map{"followers": edges})
	}
	return c.JSON(http.StatusOK, echo.Map{"following": edges})
}

func counterpartID(f models.Follow, userID uint) uint {
	if f.FollowerID == userID {
		return f.FollowingID
	}
	return f.FollowerID
}
