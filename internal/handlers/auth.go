package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
)

// AuthHandler handles the demo registration and login flow. Passwords are never checked.
type AuthHandler struct {
	userRepository repositories.UserRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository) *AuthHandler {
	return &AuthHandler{userRepository: userRepo}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register creates a donor or NGO account
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	_, err := h.userRepository.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return internalError(err)
	}

	user := &models.User{
		Email:    req.Email,
		Role:     req.Role,
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return internalError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "user": user})
}

// Login returns the account for the email, creating a placeholder account on first login
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		user = &models.User{
			Email: req.Email,
			Role:  req.Role,
			Name:  placeholderName(req.Role),
		}
		if err := h.userRepository.CreateUser(ctx, user); err != nil {
			return internalError(err)
		}
	} else if err != nil {
		return internalError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

func placeholderName(role models.Role) string {
	if role == models.RoleNGO {
		return "NGO User"
	}
	return "Donor User"
}
