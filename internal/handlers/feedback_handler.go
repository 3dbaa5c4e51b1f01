package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
)

// FeedbackHandler handles public platform feedback
type FeedbackHandler struct {
	feedbackRepository repositories.FeedbackRepository
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackRepo repositories.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{feedbackRepository: feedbackRepo}
}

// RegisterFeedbackRoutes registers feedback routes
func (h *FeedbackHandler) RegisterFeedbackRoutes(g *echo.Group) {
	g.GET("/feedbacks", h.GetFeedbacks)
	g.POST("/feedbacks", h.CreateFeedback)
}

// GetFeedbacks lists feedback newest first
func (h *FeedbackHandler) GetFeedbacks(c echo.Context) error {
	feedbacks, err := h.feedbackRepository.GetFeedbacks(c.Request().Context())
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, feedbacks)
}

// CreateFeedback stores a rating between 1 and 5
func (h *FeedbackHandler) CreateFeedback(c echo.Context) error {
	var req models.CreateFeedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	feedback := &models.Feedback{
		UserID:   req.UserID,
		UserName: req.UserName,
		Rating:   req.Rating,
		Text:     req.Text,
	}
	if err := h.feedbackRepository.CreateFeedback(c.Request().Context(), feedback); err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "feedback": feedback})
}
