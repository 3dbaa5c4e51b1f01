package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/services"
)

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// RegisterDonationRoutes registers donation routes
func (h *DonationHandler) RegisterDonationRoutes(g *echo.Group) {
	g.GET("/donations", h.GetDonations)
	g.POST("/donations", h.CreateDonation)
	g.GET("/donations/:id", h.GetDonation)
	g.PATCH("/donations/:id", h.UpdateDonation)
	g.DELETE("/donations/:id", h.DeleteDonation)
	g.PATCH("/donations/:id/status", h.UpdateStatus)
	g.POST("/donations/:id/schedule", h.SchedulePickup)
}

// GetDonations lists donations, newest first. Supports ?donorId=, ?ngoId=, ?status= and ?unassigned=true.
func (h *DonationHandler) GetDonations(c echo.Context) error {
	unassigned, _ := strconv.ParseBool(c.QueryParam("unassigned"))
	donations, err := h.donationService.List(c.Request().Context(), models.DonationFilter{
		DonorID:    c.QueryParam("donorId"),
		NgoID:      c.QueryParam("ngoId"),
		Status:     models.DonationStatus(c.QueryParam("status")),
		Unassigned: unassigned,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, donations)
}

// GetDonation returns one donation
func (h *DonationHandler) GetDonation(c echo.Context) error {
	donation, err := h.donationService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, donation)
}

// CreateDonation lists a donation and notifies matching NGOs
func (h *DonationHandler) CreateDonation(c echo.Context) error {
	var req models.CreateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	donation, err := h.donationService.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "donation": donation})
}

// UpdateDonation edits a pending donation
func (h *DonationHandler) UpdateDonation(c echo.Context) error {
	var req models.UpdateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	donation, err := h.donationService.Edit(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "donation": donation})
}

// DeleteDonation removes a pending donation
func (h *DonationHandler) DeleteDonation(c echo.Context) error {
	if err := h.donationService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UpdateStatus moves a donation forward in its lifecycle
func (h *DonationHandler) UpdateStatus(c echo.Context) error {
	var req models.UpdateDonationStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	donation, err := h.donationService.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "donation": donation})
}

// SchedulePickup assigns an NGO and pickup slot
func (h *DonationHandler) SchedulePickup(c echo.Context) error {
	var req models.SchedulePickupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	donation, err := h.donationService.SchedulePickup(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "donation": donation})
}
