package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
)

// UsageReportHandler handles impact reports NGOs file for delivered donations
type UsageReportHandler struct {
	reportRepository   repositories.UsageReportRepository
	donationRepository repositories.DonationRepository
}

// NewUsageReportHandler creates a new UsageReportHandler
func NewUsageReportHandler(reportRepo repositories.UsageReportRepository, donationRepo repositories.DonationRepository) *UsageReportHandler {
	return &UsageReportHandler{
		reportRepository:   reportRepo,
		donationRepository: donationRepo,
	}
}

// RegisterUsageReportRoutes registers usage report routes
func (h *UsageReportHandler) RegisterUsageReportRoutes(g *echo.Group) {
	g.GET("/usage-reports", h.GetUsageReports)
	g.POST("/usage-reports", h.CreateUsageReport)
}

// GetUsageReports lists reports newest first, optionally narrowed by ?ngoId= and ?donationId=
func (h *UsageReportHandler) GetUsageReports(c echo.Context) error {
	reports, err := h.reportRepository.GetUsageReports(c.Request().Context(), models.UsageReportFilter{
		NgoID:      c.QueryParam("ngoId"),
		DonationID: c.QueryParam("donationId"),
	})
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// CreateUsageReport files a report. The donation must be delivered to the reporting NGO.
func (h *UsageReportHandler) CreateUsageReport(c echo.Context) error {
	var req models.CreateUsageReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	donation, err := h.donationRepository.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		return repoError(err, "Donation not found")
	}
	if donation.NgoID != req.NgoID {
		return echo.NewHTTPError(http.StatusPreconditionFailed, "Donation was not collected by this NGO")
	}
	if donation.Status != models.DonationDelivered {
		return echo.NewHTTPError(http.StatusPreconditionFailed, "Only delivered donations can be reported on")
	}

	report := &models.UsageReport{
		NgoID:              req.NgoID,
		DonationID:         req.DonationID,
		Title:              req.Title,
		Description:        req.Description,
		BeneficiariesCount: req.BeneficiariesCount,
		Impact:             req.Impact,
		Images:             req.Images,
		Videos:             req.Videos,
		Location:           req.Location,
		Date:               req.Date,
	}
	if err := h.reportRepository.CreateUsageReport(ctx, report); err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "report": report})
}
