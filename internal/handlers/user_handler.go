package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// AvatarUploader stores an avatar image and returns its public URL.
// *storage.AvatarStore satisfies it.
type AvatarUploader interface {
	UploadAvatar(userID uint, file *multipart.FileHeader) (string, error)
}

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository          repositories.UserRepository
	postRepository          repositories.PostRepository
	likeRepository          repositories.LikeRepository
	tagRepository           repositories.TagRepository
	socialProfileRepository repositories.SocialProfileRepository
	avatarUploader          AvatarUploader
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	tagRepo repositories.TagRepository,
	socialProfileRepo repositories.SocialProfileRepository,
	avatarUploader AvatarUploader,
) *UserHandler {
	return &UserHandler{
		userRepository:          userRepo,
		postRepository:          postRepo,
		likeRepository:          likeRepo,
		tagRepository:           tagRepo,
		socialProfileRepository: socialProfileRepo,
		avatarUploader:          avatarUploader,
	}
}

// RegisterPublicUserRoutes registers the public profile routes
func (h *UserHandler) RegisterPublicUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/by_name/:name", h.GetUserByName)
}

// RegisterUserRoutes registers authenticated user routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.PATCH("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.POST("/users/:id/avatar", h.UploadAvatar)
}

// GetUser returns a public profile: the user, their posts (newest first,
// enriched), the posts they liked (most recently liked first), their tags
// and SNS links.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return err
	}

	return h.renderProfile(c, user)
}

// GetUserByName resolves a public profile by its unique display name.
func (h *UserHandler) GetUserByName(c echo.Context) error {
	user, err := h.userRepository.GetUserByName(c.Param("name"))
	if err != nil {
		return err
	}

	return h.renderProfile(c, user)
}

func (h *UserHandler) renderProfile(c echo.Context, user *models.User) error {
	posts, err := h.postRepository.GetPostsByUserID(user.ID)
	if err != nil {
		return err
	}
	enrichedPosts, err := enrichPosts(posts, h.userRepository, h.likeRepository, h.tagRepository)
	if err != nil {
		return err
	}

	likedPosts, err := h.postRepository.GetLikedPostsByUserID(user.ID)
	if err != nil {
		return err
	}
	enrichedLiked, err := enrichPosts(likedPosts, h.userRepository, h.likeRepository, h.tagRepository)
	if err != nil {
		return err
	}

	tags, err := h.tagRepository.GetTagsForUser(user.ID)
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	profiles, err := h.socialProfileRepository.GetSocialProfilesByUserID(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":            user,
		"posts":           enrichedPosts,
		"liked_posts":     enrichedLiked,
		"tags":            tags,
		"social_profiles": profiles,
	})
}

// UpdateUser edits the caller's own profile. A supplied tags list replaces
// the profile's tag links; an absent field leaves them untouched.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return err
	}
	if user.ID != actorID {
		return apperrors.New(apperrors.Forbidden, "cannot edit another user's profile")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Tags != nil {
		if _, fieldErrs := repositories.NormalizeTagNames(*req.Tags); len(fieldErrs) > 0 {
			return apperrors.Validation(fieldErrs...)
		}
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Image != "" {
		user.Image = req.Image
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		return err
	}

	var tags []models.Tag
	if req.Tags != nil {
		tags, err = h.tagRepository.ReplaceTags(models.TagOwner{Kind: models.TagOwnerUser, ID: user.ID}, *req.Tags)
		if err != nil {
			return err
		}
	} else {
		tags, err = h.tagRepository.GetTagsForUser(user.ID)
		if err != nil {
			return err
		}
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "tags": tags})
}

// DeleteUser removes the caller's own account and everything hanging off it.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return err
	}
	if user.ID != actorID {
		return apperrors.New(apperrors.Forbidden, "cannot delete another user's account")
	}

	if err := h.userRepository.DeleteUser(user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

// UploadAvatar stores a new avatar image for the caller and saves its URL.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}
	if uint(id) != actorID {
		return apperrors.New(apperrors.Forbidden, "cannot change another user's avatar")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return apperrors.Validation(apperrors.FieldError{Field: "image", Message: "is required"})
	}

	user, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		return err
	}

	url, err := h.avatarUploader.UploadAvatar(user.ID, file)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to store avatar", err)
	}

	user.Image = url
	if err := h.userRepository.UpdateUser(user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
