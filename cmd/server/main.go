package main

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/router"
	"github.com/yuta-hayashi/linkup/backend/internal/storage"
	"github.com/yuta-hayashi/linkup/backend/pkg/config"
	"github.com/yuta-hayashi/linkup/backend/pkg/firebase"
	"github.com/yuta-hayashi/linkup/backend/pkg/logger"
	"github.com/yuta-hayashi/linkup/backend/validators"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer config.CloseDB(db)
	zlog.Info("connected to PostgreSQL")

	// OAuth login stays disabled when no Firebase credentials are configured.
	var authClient *fbauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			zlog.Fatal("failed to initialize Firebase", zap.Error(err))
		}
		authClient = firebaseApp.AuthClient
		zlog.Info("firebase auth client initialized")
	} else {
		zlog.Warn("FIREBASE_CREDENTIALS_PATH not set, OAuth login disabled")
	}

	avatarStore, err := storage.NewAvatarStore(storage.S3Config{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		PublicHost:      cfg.S3PublicHost,
	})
	if err != nil {
		zlog.Fatal("failed to initialize avatar storage", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(zlog)

	router.SetupMiddleware(e, zlog)
	if err := router.SetupRoutes(e, db, authClient, avatarStore, cfg.JWTSecret, zlog); err != nil {
		zlog.Fatal("failed to set up routes", zap.Error(err))
	}

	zlog.Info("starting server", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
