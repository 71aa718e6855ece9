package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuta-hayashi/linkup/backend/internal/handlers"
	"github.com/yuta-hayashi/linkup/backend/internal/middleware"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))
}

// SetupRoutes migrates the schema, wires repositories into handlers and
// registers all routes.
func SetupRoutes(
	e *echo.Echo,
	db *gorm.DB,
	firebaseAuthClient *auth.Client,
	avatarUploader handlers.AvatarUploader,
	jwtSecret string,
	log *zap.Logger,
) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Tag{},
		&models.PostTag{},
		&models.UserTag{},
		&models.Message{},
		&models.SocialProfile{},
	)
	if err != nil {
		return err
	}
	log.Info("auto-migrations completed")

	e.GET("/health", handlers.HealthCheck)

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)
	socialProfileRepo := repositories.NewPostgresSocialProfileRepository(db)

	v1 := e.Group("/v1")

	// Unprotected routes: auth plus public profile, post and follow listings.
	var verifier handlers.IDTokenVerifier
	if firebaseAuthClient != nil {
		verifier = firebaseAuthClient
	}
	authHandler := handlers.NewAuthHandler(userRepo, verifier, jwtSecret)
	authHandler.RegisterAuthRoutes(v1)

	userHandler := handlers.NewUserHandler(userRepo, postRepo, likeRepo, tagRepo, socialProfileRepo, avatarUploader)
	userHandler.RegisterPublicUserRoutes(v1)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, likeRepo, tagRepo)
	postHandler.RegisterPublicPostRoutes(v1)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterListingRoutes(v1)

	// Protected routes (require JWT authentication).
	api := v1.Group("", middleware.JWTAuthMiddleware(jwtSecret))

	userHandler.RegisterUserRoutes(api)
	postHandler.RegisterPostRoutes(api)
	followHandler.RegisterFollowRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo)
	likeHandler.RegisterLikeRoutes(api)

	timelineHandler := handlers.NewTimelineHandler(postRepo, userRepo, followRepo, likeRepo, tagRepo)
	timelineHandler.RegisterTimelineRoutes(api)

	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo)
	messageHandler.RegisterMessageRoutes(api)

	socialProfileHandler := handlers.NewSocialProfileHandler(socialProfileRepo)
	socialProfileHandler.RegisterSocialProfileRoutes(api)

	log.Info("all routes configured")
	return nil
}
