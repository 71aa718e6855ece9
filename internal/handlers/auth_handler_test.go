package handlers

import (
	"context"
	"net/http"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

const testJWTSecret = "test-secret"

type stubTokenVerifier struct {
	token *auth.Token
	err   error
}

func (s *stubTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	return s.token, s.err
}

func TestSignup(t *testing.T) {
	e := newTestEcho()

	t.Run("registers a local user and issues a token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, nil, testJWTSecret)

		userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			user := args.Get(0).(*models.User)
			assert.Equal(t, models.ProviderLocal, user.Provider)
			assert.NotEqual(t, "hunter22", user.PasswordDigest)
			user.ID = 1
		}).Return(nil)

		rec := doRequest(t, e, http.MethodPost, "/v1/auth/signup",
			`{"name": "alice", "email": "alice@example.com", "password": "hunter22"}`, 0, h.Signup, nil)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token"`)
		// The digest must never leave the server.
		assert.NotContains(t, rec.Body.String(), "password_digest")
	})

	t.Run("a taken name conflicts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, nil, testJWTSecret)

		userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).
			Return(apperrors.New(apperrors.Conflict, "name or email already taken"))

		rec := doRequest(t, e, http.MethodPost, "/v1/auth/signup",
			`{"name": "alice", "email": "alice@example.com", "password": "hunter22"}`, 0, h.Signup, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("a malformed email fails validation", func(t *testing.T) {
		h := NewAuthHandler(new(MockUserRepository), nil, testJWTSecret)

		rec := doRequest(t, e, http.MethodPost, "/v1/auth/signup",
			`{"name": "alice", "email": "not-an-email", "password": "hunter22"}`, 0, h.Signup, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestSignIn(t *testing.T) {
	e := newTestEcho()

	digest, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 1, Name: "alice", Email: "alice@example.com", Provider: models.ProviderLocal, PasswordDigest: string(digest)}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, nil, testJWTSecret)

		userRepo.On("GetUserByEmailAndProvider", "alice@example.com", models.ProviderLocal).Return(stored, nil)

		rec := doRequest(t, e, http.MethodPost, "/v1/auth/signin",
			`{"email": "alice@example.com", "password": "hunter22"}`, 0, h.SignIn, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token"`)
	})

	t.Run("a wrong password is unauthorized", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, nil, testJWTSecret)

		userRepo.On("GetUserByEmailAndProvider", "alice@example.com", models.ProviderLocal).Return(stored, nil)

		rec := doRequest(t, e, http.MethodPost, "/v1/auth/signin",
			`{"email": "alice@example.com", "password": "wrong"}`, 0, h.SignIn, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("an unknown email gets the same answer as a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, nil, testJWTSecret)

		userRepo.On("GetUserByEmailAndProvider", "nobody@example.com", models.ProviderLocal).
			Return(nil, apperrors.New(apperrors.NotFound, "user not found"))

		rec := doRequest(t, e, http.MethodPost, "/v1/auth/signin",
			`{"email": "nobody@example.com", "password": "hunter22"}`, 0, h.SignIn, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
	})
}

func TestOAuthLogin(t *testing.T) {
	e := newTestEcho()

	providerToken := &auth.Token{
		Claims:   map[string]interface{}{"email": "carol@example.com", "name": "carol"},
		Firebase: auth.FirebaseInfo{SignInProvider: "google.com"},
	}

	t.Run("signs in an existing user by email and provider", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, &stubTokenVerifier{token: providerToken}, testJWTSecret)

		userRepo.On("GetUserByEmailAndProvider", "carol@example.com", "google.com").
			Return(&models.User{ID: 3, Name: "carol", Email: "carol@example.com", Provider: "google.com"}, nil)

		rec := doRequest(t, e, http.MethodPost, "/v1/oauth",
			`{"id_token": "provider-token"}`, 0, h.OAuthLogin, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token"`)
		userRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("creates the user on first login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, &stubTokenVerifier{token: providerToken}, testJWTSecret)

		userRepo.On("GetUserByEmailAndProvider", "carol@example.com", "google.com").
			Return(nil, apperrors.New(apperrors.NotFound, "user not found"))
		userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			user := args.Get(0).(*models.User)
			assert.Equal(t, "carol", user.Name)
			assert.Equal(t, "google.com", user.Provider)
			assert.NotEmpty(t, user.PasswordDigest)
		}).Return(nil)

		rec := doRequest(t, e, http.MethodPost, "/v1/oauth",
			`{"id_token": "provider-token"}`, 0, h.OAuthLogin, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		userRepo.AssertExpectations(t)
	})

	t.Run("a bad provider token is unauthorized", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		h := NewAuthHandler(userRepo, &stubTokenVerifier{err: assert.AnError}, testJWTSecret)

		rec := doRequest(t, e, http.MethodPost, "/v1/oauth",
			`{"id_token": "garbage"}`, 0, h.OAuthLogin, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects everything when no verifier is configured", func(t *testing.T) {
		h := NewAuthHandler(new(MockUserRepository), nil, testJWTSecret)

		rec := doRequest(t, e, http.MethodPost, "/v1/oauth",
			`{"id_token": "provider-token"}`, 0, h.OAuthLogin, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
