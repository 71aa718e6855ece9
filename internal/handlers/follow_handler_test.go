package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

func TestFollow(t *testing.T) {
	e := newTestEcho()

	t.Run("creates the edge", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		h := NewFollowHandler(followRepo, userRepo)

		userRepo.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, Name: "bob"}, nil)
		followRepo.On("CreateFollow", mock.AnythingOfType("*models.Follow")).Return(nil)

		rec := doRequest(t, e, http.MethodPost, "/v1/follows", `{"following_id": 2}`, 1, h.Follow, nil)

		assert.Equal(t, http.StatusCreated, rec.Code)
		followRepo.AssertExpectations(t)
	})

	t.Run("rejects self-follow", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		h := NewFollowHandler(followRepo, userRepo)

		rec := doRequest(t, e, http.MethodPost, "/v1/follows", `{"following_id": 1}`, 1, h.Follow, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		followRepo.AssertNotCalled(t, "CreateFollow", mock.Anything)
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		h := NewFollowHandler(followRepo, userRepo)

		userRepo.On("GetUserByID", uint(99)).Return(nil, apperrors.New(apperrors.NotFound, "user not found"))

		rec := doRequest(t, e, http.MethodPost, "/v1/follows", `{"following_id": 99}`, 1, h.Follow, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate edge conflicts", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		h := NewFollowHandler(followRepo, userRepo)

		userRepo.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, Name: "bob"}, nil)
		followRepo.On("CreateFollow", mock.AnythingOfType("*models.Follow")).
			Return(apperrors.New(apperrors.Conflict, "already following this user"))

		rec := doRequest(t, e, http.MethodPost, "/v1/follows", `{"following_id": 2}`, 1, h.Follow, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(MockUserRepository)
		h := NewFollowHandler(followRepo, userRepo)

		rec := doRequest(t, e, http.MethodPost, "/v1/follows", `{"following_id": 2}`, 0, h.Follow, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUnfollow(t *testing.T) {
	e := newTestEcho()

	t.Run("removes an owned edge", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		h := NewFollowHandler(followRepo, new(MockUserRepository))

		followRepo.On("DeleteFollow", uint(5), uint(1)).Return(nil)

		rec := doRequest(t, e, http.MethodDelete, "/v1/follows/5", "", 1, h.Unfollow, map[string]string{"id": "5"})

		assert.Equal(t, http.StatusOK, rec.Code)
		followRepo.AssertExpectations(t)
	})

	t.Run("someone else's edge is not found", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		h := NewFollowHandler(followRepo, new(MockUserRepository))

		followRepo.On("DeleteFollow", uint(5), uint(1)).
			Return(apperrors.New(apperrors.NotFound, "follow not found"))

		rec := doRequest(t, e, http.MethodDelete, "/v1/follows/5", "", 1, h.Unfollow, map[string]string{"id": "5"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetFollowers(t *testing.T) {
	e := newTestEcho()

	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	h := NewFollowHandler(followRepo, userRepo)

	now := time.Now()
	followRepo.On("GetFollowers", uint(1)).Return([]models.Follow{
		{ID: 11, FollowerID: 3, FollowingID: 1, CreatedAt: now},
		{ID: 10, FollowerID: 2, FollowingID: 1, CreatedAt: now.Add(-time.Hour)},
	}, nil)
	userRepo.On("GetUsersByIDs", []uint{3, 2}).Return([]models.User{
		{ID: 2, Name: "bob"},
		{ID: 3, Name: "carol"},
	}, nil)

	rec := doRequest(t, e, http.MethodGet, "/v1/users/1/followers", "", 0, h.GetFollowers, map[string]string{"id": "1"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Followers []models.FollowEdge `json:"followers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Followers, 2)

	// Newest edge first, each carrying edge id and counterpart profile.
	assert.Equal(t, uint(11), resp.Followers[0].ID)
	assert.Equal(t, "carol", resp.Followers[0].User.Name)
	assert.Equal(t, uint(10), resp.Followers[1].ID)
	assert.Equal(t, "bob", resp.Followers[1].User.Name)
}
