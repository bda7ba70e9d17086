package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/mailer"
	"github.com/braincarehq/backend/internal/users"
)

// AuthHandler serves signup and identity endpoints. Signup requires a
// verified token whose subject is not yet registered; the token itself is
// issued by the external authentication provider.
type AuthHandler struct {
	users    *users.Service
	resolver *auth.Resolver
	mailer   *mailer.Mailer
	logger   *slog.Logger
}

// MeResponse reports the caller's resolved identity.
type MeResponse struct {
	UserID  int64  `json:"user_id"`
	Subject string `json:"subject"`
	Email   string `json:"email"`
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(log *slog.Logger, usersService *users.Service, resolver *auth.Resolver, m *mailer.Mailer) *AuthHandler {
	return &AuthHandler{
		users:    usersService,
		resolver: resolver,
		mailer:   m,
		logger:   log.With(slog.String("handler", "auth")),
	}
}

// Register mounts the auth routes on the Echo instance.
func (h *AuthHandler) Register(e *echo.Echo) {
	e.POST("/api/auth/signup", h.SignUp)
	e.GET("/api/auth/me", h.Me)
}

// SignUp godoc
// @Summary Register the authenticated subject
// @Description Create the application user record for a verified token subject
// @Tags auth
// @Param payload body users.SignUpRequest true "Signup request"
// @Success 201 {object} users.User
// @Failure 400 {object} auth.ErrorResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 409 {object} auth.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}

	var req users.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.SignUp(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}

	if h.mailer != nil {
		go func(email, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := h.mailer.SendWelcome(ctx, email, name); err != nil {
				h.logger.Warn("welcome email failed", slog.Any("error", err))
			}
		}(user.Email, user.Name)
	}

	return c.JSON(http.StatusCreated, user)
}

// Me godoc
// @Summary Resolve the caller's identity
// @Description Return the internal user id and email for the authenticated subject
// @Tags auth
// @Success 200 {object} MeResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	authn, _ := auth.FromContext(c)

	subject, err := h.resolver.Subject(authn)
	if err != nil {
		return err
	}
	userID, err := h.resolver.LoggedInUserID(c.Request().Context(), authn)
	if err != nil {
		return err
	}
	email, err := h.resolver.LoggedInEmail(c.Request().Context(), authn)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MeResponse{
		UserID:  userID,
		Subject: subject,
		Email:   email,
	})
}
