package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
)

// NGOHandler handles NGO profile and collection keyword requests
type NGOHandler struct {
	ngoRepository  repositories.NGORepository
	userRepository repositories.UserRepository
}

// NewNGOHandler creates a new NGOHandler
func NewNGOHandler(ngoRepo repositories.NGORepository, userRepo repositories.UserRepository) *NGOHandler {
	return &NGOHandler{
		ngoRepository:  ngoRepo,
		userRepository: userRepo,
	}
}

// RegisterNGORoutes registers NGO routes
func (h *NGOHandler) RegisterNGORoutes(g *echo.Group) {
	g.GET("/ngos", h.GetNGOs)
	g.POST("/ngos", h.SaveNGO)
	g.GET("/ngos/:id", h.GetNGO)
	g.GET("/ngos/:id/keywords", h.GetKeywords)
	g.PUT("/ngos/:id/keywords", h.UpdateKeywords)
}

// GetNGOs lists NGO profiles, optionally narrowed by ?category= and ?q=
func (h *NGOHandler) GetNGOs(c echo.Context) error {
	ngos, err := h.ngoRepository.GetNGOs(c.Request().Context(), models.NGOFilter{
		Category: c.QueryParam("category"),
		Query:    strings.TrimSpace(c.QueryParam("q")),
	})
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, ngos)
}

// GetNGO returns one NGO profile
func (h *NGOHandler) GetNGO(c echo.Context) error {
	ngo, err := h.ngoRepository.GetNGOByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return repoError(err, "NGO not found")
	}
	return c.JSON(http.StatusOK, ngo)
}

// SaveNGO creates or replaces the profile of an NGO account. Keywords are kept.
func (h *NGOHandler) SaveNGO(c echo.Context) error {
	var req models.UpsertNGORequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	if _, err := h.ngoUser(c, req.UserID); err != nil {
		return err
	}

	ngo := &models.NGO{ID: req.UserID}
	existing, err := h.ngoRepository.GetNGOByID(ctx, req.UserID)
	switch {
	case err == nil:
		ngo = existing
	case !errors.Is(err, repositories.ErrNotFound):
		return internalError(err)
	}

	ngo.Name = req.Name
	ngo.Description = req.Description
	ngo.Category = req.Category
	ngo.Location = req.Location
	ngo.Rating = req.Rating
	ngo.Needs = req.Needs
	ngo.UpdatedAt = time.Now().UTC()

	if err := h.ngoRepository.SaveNGO(ctx, ngo); err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "ngo": ngo})
}

// GetKeywords returns the NGO's collection keywords
func (h *NGOHandler) GetKeywords(c echo.Context) error {
	ngo, err := h.ngoRepository.GetNGOByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repositories.ErrNotFound) {
		return c.JSON(http.StatusOK, echo.Map{"keywords": []string{}})
	}
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"keywords": keywordsOrEmpty(ngo.Keywords)})
}

// UpdateKeywords replaces the NGO's collection keywords. An NGO account without a
// profile gets a minimal one so its keywords can take part in matching.
func (h *NGOHandler) UpdateKeywords(c echo.Context) error {
	var req models.UpdateKeywordsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	id := c.Param("id")

	user, err := h.ngoUser(c, id)
	if err != nil {
		return err
	}

	ngo, err := h.ngoRepository.GetNGOByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		ngo = &models.NGO{ID: id, Name: user.Name, Location: user.Location}
	} else if err != nil {
		return internalError(err)
	}

	ngo.Keywords = normalizeKeywords(req.Keywords)
	ngo.UpdatedAt = time.Now().UTC()
	if err := h.ngoRepository.SaveNGO(ctx, ngo); err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "keywords": keywordsOrEmpty(ngo.Keywords)})
}

func (h *NGOHandler) ngoUser(c echo.Context, id string) (*models.User, error) {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	if user.Role != models.RoleNGO {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "User is not an NGO account")
	}
	return user, nil
}

// normalizeKeywords trims, lowercases and de-duplicates, dropping blanks
func normalizeKeywords(raw []string) []string {
	keywords := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	return keywords
}

func keywordsOrEmpty(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}
