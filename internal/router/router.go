package router

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shareity/backend/internal/handlers"
	"github.com/shareity/backend/internal/repositories"
	"github.com/shareity/backend/internal/services"
	"github.com/shareity/backend/internal/storage"
)

// Dependencies are the wired components routes are served from
type Dependencies struct {
	Store       *repositories.Store
	Pusher      services.Pusher
	Uploader    storage.Uploader
	UploadsDir  string
	Development bool
	Logger      zerolog.Logger
}

// SetupRoutes builds the services and registers every route under /api.
// The returned Notifier is drained on shutdown so pending pushes can finish.
func SetupRoutes(e *echo.Echo, deps Dependencies) *services.Notifier {
	logger := deps.Logger
	store := deps.Store

	notifier := services.NewNotifier(store.Notifications, store.Users, deps.Pusher, logger)
	donationService := services.NewDonationService(store, notifier, logger)
	needService := services.NewNeedService(store, notifier, logger)

	api := e.Group("/api")
	api.GET("/health", handlers.HealthCheck)

	if deps.Development {
		handlers.NewDebugHandler(store).RegisterDebugRoutes(api)
		logger.Info().Msg("debug routes configured")
	}

	handlers.NewAuthHandler(store.Users).RegisterAuthRoutes(api.Group("/auth"))
	handlers.NewUserHandler(store.Users).RegisterProfileRoutes(api)
	handlers.NewNGOHandler(store.NGOs, store.Users).RegisterNGORoutes(api)
	handlers.NewNeedHandler(needService).RegisterNeedRoutes(api)
	handlers.NewDonationHandler(donationService).RegisterDonationRoutes(api)
	handlers.NewNotificationHandler(notifier).RegisterNotificationRoutes(api)
	handlers.NewUsageReportHandler(store.UsageReports, store.Donations).RegisterUsageReportRoutes(api)
	handlers.NewFeedbackHandler(store.Feedbacks).RegisterFeedbackRoutes(api)

	if deps.Uploader != nil {
		handlers.NewUploadHandler(deps.Uploader).RegisterUploadRoutes(api)
	}
	if deps.UploadsDir != "" {
		e.Static(storage.PublicPrefix, deps.UploadsDir)
	}

	logger.Info().Msg("all routes configured")
	return notifier
}
