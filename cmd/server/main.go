package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shareity/backend/internal/metrics"
	"github.com/shareity/backend/internal/repositories"
	"github.com/shareity/backend/internal/router"
	"github.com/shareity/backend/internal/services"
	"github.com/shareity/backend/internal/storage"
	"github.com/shareity/backend/pkg/config"
	"github.com/shareity/backend/pkg/firebase"
	"github.com/shareity/backend/pkg/logging"
	"github.com/shareity/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.Env)

	// Select the store
	var store *repositories.Store
	switch cfg.Store {
	case config.StoreDatabase:
		db, err := config.InitDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize databases")
		}
		defer db.CloseDB()
		if err := repositories.AutoMigrate(db.Postgres); err != nil {
			log.Fatal().Err(err).Msg("failed to auto migrate models")
		}
		store = repositories.NewDatabaseStore(db.Postgres, db.MongoDB)
	case config.StoreMemory:
		store = repositories.NewMemoryStore()
	default:
		log.Fatal().Str("store", cfg.Store).Msg("unknown STORE, expected memory or database")
	}
	logger.Info().Str("store", cfg.Store).Msg("store ready")

	// Push notifications are optional
	ctx := context.Background()
	var pusher services.Pusher
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Firebase")
		}
		pusher = firebase.NewPusher(firebaseApp.MessagingClient)
	}

	// Uploads go to Cloudinary when configured, local disk otherwise
	var uploader storage.Uploader
	uploadsDir := ""
	if cfg.CloudinaryEnabled() {
		cld, err := storage.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "donations")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Cloudinary")
		}
		uploader = cld
	} else {
		local, err := storage.NewLocalUploader(cfg.UploadsDir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to prepare uploads directory")
		}
		uploader = local
		uploadsDir = local.Dir
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, logger)
	notifier := router.SetupRoutes(e, router.Dependencies{
		Store:       store,
		Pusher:      pusher,
		Uploader:    uploader,
		UploadsDir:  uploadsDir,
		Development: cfg.IsDevelopment(),
		Logger:      logger,
	})

	// Metrics on their own port
	m := echo.New()
	m.HideBanner = true
	m.HidePort = true
	m.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	go func() {
		if err := m.Start(":" + cfg.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := m.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown")
	}
	notifier.Wait()
	logger.Info().Msg("server exited")
}
