package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
)

// DebugHandler dumps every collection. Only registered in development.
type DebugHandler struct {
	store *repositories.Store
}

// NewDebugHandler creates a new DebugHandler
func NewDebugHandler(store *repositories.Store) *DebugHandler {
	return &DebugHandler{store: store}
}

// RegisterDebugRoutes registers debug routes
func (h *DebugHandler) RegisterDebugRoutes(g *echo.Group) {
	g.GET("/debug/db", h.DumpDB)
}

// DumpDB returns the full contents of the store
func (h *DebugHandler) DumpDB(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.store.Users.GetUsers(ctx)
	if err != nil {
		return internalError(err)
	}
	ngos, err := h.store.NGOs.GetNGOs(ctx, models.NGOFilter{})
	if err != nil {
		return internalError(err)
	}
	donations, err := h.store.Donations.GetDonations(ctx, models.DonationFilter{})
	if err != nil {
		return internalError(err)
	}
	requests, err := h.store.Needs.GetNeeds(ctx, models.NeedFilter{})
	if err != nil {
		return internalError(err)
	}
	reports, err := h.store.UsageReports.GetUsageReports(ctx, models.UsageReportFilter{})
	if err != nil {
		return internalError(err)
	}
	notifications, err := h.store.Notifications.GetAllNotifications(ctx)
	if err != nil {
		return internalError(err)
	}
	feedbacks, err := h.store.Feedbacks.GetFeedbacks(ctx)
	if err != nil {
		return internalError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":         users,
		"ngos":          ngos,
		"donations":     donations,
		"requests":      requests,
		"usageReports":  reports,
		"notifications": notifications,
		"feedbacks":     feedbacks,
	})
}
