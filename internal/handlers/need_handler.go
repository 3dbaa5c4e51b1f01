package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/services"
)

// NeedHandler handles NGO request endpoints
type NeedHandler struct {
	needService *services.NeedService
}

// NewNeedHandler creates a new NeedHandler
func NewNeedHandler(needService *services.NeedService) *NeedHandler {
	return &NeedHandler{needService: needService}
}

// RegisterNeedRoutes registers the /requests routes
func (h *NeedHandler) RegisterNeedRoutes(g *echo.Group) {
	g.GET("/requests", h.GetNeeds)
	g.POST("/requests", h.CreateNeed)
	g.GET("/requests/:id", h.GetNeed)
	g.PATCH("/requests/:id", h.UpdateNeed)
	g.POST("/requests/:id/accept", h.AcceptNeed)
}

// GetNeeds lists requests, optionally narrowed by ?ngoId= and ?status=
func (h *NeedHandler) GetNeeds(c echo.Context) error {
	needs, err := h.needService.List(c.Request().Context(), models.NeedFilter{
		NgoID:  c.QueryParam("ngoId"),
		Status: models.NeedStatus(c.QueryParam("status")),
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, needs)
}

// GetNeed returns one request
func (h *NeedHandler) GetNeed(c echo.Context) error {
	need, err := h.needService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, need)
}

// CreateNeed posts a request and notifies donors with matching donations
func (h *NeedHandler) CreateNeed(c echo.Context) error {
	var req models.CreateNeedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	need, err := h.needService.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "request": need})
}

// UpdateNeed applies a partial update
func (h *NeedHandler) UpdateNeed(c echo.Context) error {
	var req models.UpdateNeedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	need, err := h.needService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "request": need})
}

// AcceptNeed records a donor's pledge and notifies the NGO
func (h *NeedHandler) AcceptNeed(c echo.Context) error {
	var req models.AcceptNeedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	notification, err := h.needService.Accept(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "notification": notification})
}
