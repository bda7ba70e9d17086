package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/users"
)

// ProfileHandler serves the caller's profile.
type ProfileHandler struct {
	users    *users.Service
	resolver *auth.Resolver
	logger   *slog.Logger
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(log *slog.Logger, usersService *users.Service, resolver *auth.Resolver) *ProfileHandler {
	return &ProfileHandler{
		users:    usersService,
		resolver: resolver,
		logger:   log.With(slog.String("handler", "profile")),
	}
}

// Register mounts the profile routes on the Echo instance.
func (h *ProfileHandler) Register(e *echo.Echo) {
	e.GET("/api/profile", h.Get)
	e.PUT("/api/profile", h.Update)
}

// Get godoc
// @Summary Get the caller's profile
// @Tags profile
// @Success 200 {object} users.User
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	user, err := h.users.Profile(c.Request().Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update godoc
// @Summary Update the caller's profile
// @Tags profile
// @Param payload body users.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} users.User
// @Failure 400 {object} auth.ErrorResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	var req users.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.users.UpdateProfile(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
