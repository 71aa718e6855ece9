package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// SocialProfileHandler handles SNS link management on user profiles.
type SocialProfileHandler struct {
	socialProfileRepository repositories.SocialProfileRepository
}

// NewSocialProfileHandler creates a new SocialProfileHandler
func NewSocialProfileHandler(repo repositories.SocialProfileRepository) *SocialProfileHandler {
	return &SocialProfileHandler{socialProfileRepository: repo}
}

// RegisterSocialProfileRoutes registers SNS link routes
func (h *SocialProfileHandler) RegisterSocialProfileRoutes(g *echo.Group) {
	g.POST("/social_profiles", h.Create)
	g.PATCH("/social_profiles/:id", h.Update)
	g.DELETE("/social_profiles/:id", h.Delete)
}

// Create adds an SNS link to the caller's profile.
func (h *SocialProfileHandler) Create(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	var req models.CreateSocialProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile := &models.SocialProfile{
		UserID:   actorID,
		Provider: req.Provider,
		URL:      req.URL,
	}
	if err := h.socialProfileRepository.CreateSocialProfile(profile); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"social_profile": profile})
}

// Update edits an SNS link. Owner only.
func (h *SocialProfileHandler) Update(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid profile ID")
	}

	var req models.UpdateSocialProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.socialProfileRepository.GetSocialProfileByID(uint(id))
	if err != nil {
		return err
	}
	if profile.UserID != actorID {
		return apperrors.New(apperrors.Forbidden, "cannot edit another user's social profile")
	}

	if req.Provider != "" {
		profile.Provider = req.Provider
	}
	if req.URL != "" {
		profile.URL = req.URL
	}
	if err := h.socialProfileRepository.UpdateSocialProfile(profile); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"social_profile": profile})
}

// Delete removes an SNS link. Owner only.
func (h *SocialProfileHandler) Delete(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid profile ID")
	}

	profile, err := h.socialProfileRepository.GetSocialProfileByID(uint(id))
	if err != nil {
		return err
	}
	if profile.UserID != actorID {
		return apperrors.New(apperrors.Forbidden, "cannot delete another user's social profile")
	}

	if err := h.socialProfileRepository.DeleteSocialProfile(profile.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "social profile deleted"})
}
