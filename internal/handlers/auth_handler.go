package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// IDTokenVerifier verifies an OAuth provider ID token. *auth.Client
// satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokenVerifier  IDTokenVerifier
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. tokenVerifier may be nil when no
// OAuth provider is configured; the oauth route then rejects all requests.
func NewAuthHandler(userRepo repositories.UserRepository, tokenVerifier IDTokenVerifier, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokenVerifier:  tokenVerifier,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/signup", h.Signup)
	g.POST("/auth/signin", h.SignIn)
	g.POST("/oauth", h.OAuthLogin)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to hash password", err)
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Provider:       models.ProviderLocal,
		PasswordDigest: string(hashed),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return err
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to generate token", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmailAndProvider(req.Email, models.ProviderLocal)
	if err != nil {
		return apperrors.New(apperrors.Unauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(req.Password)); err != nil {
		return apperrors.New(apperrors.Unauthorized, "invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to generate token", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// OAuthLogin verifies a provider ID token and finds or creates the user by
// the unique (email, provider) pair, then issues a local JWT.
func (h *AuthHandler) OAuthLogin(c echo.Context) error {
	var req models.OAuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if h.tokenVerifier == nil {
		return apperrors.New(apperrors.Unauthorized, "OAuth login is not configured")
	}

	token, err := h.tokenVerifier.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return apperrors.New(apperrors.Unauthorized, "invalid ID token")
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return apperrors.New(apperrors.Unauthorized, "ID token carries no email")
	}
	provider := token.Firebase.SignInProvider
	if provider == "" {
		provider = "firebase"
	}

	user, err := h.userRepository.GetUserByEmailAndProvider(email, provider)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Kind != apperrors.NotFound {
			return err
		}
		user, err = h.createOAuthUser(token, email, provider)
		if err != nil {
			return err
		}
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to generate token", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": localJWT, "user": user})
}

func (h *AuthHandler) createOAuthUser(token *auth.Token, email, provider string) (*models.User, error) {
	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	image, _ := token.Claims["picture"].(string)

	// OAuth users never sign in with a password; store an unguessable digest.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to hash password", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		Provider:       provider,
		PasswordDigest: string(hashed),
		Image:          image,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
