package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/inference"
	"github.com/braincarehq/backend/internal/journal"
	"github.com/braincarehq/backend/internal/users"
)

// Error codes for domain failures surfaced by the API.
const (
	codeAlreadyRegistered = "ALREADY_REGISTERED"
	codeEntryNotFound     = "JOURNAL_ENTRY_NOT_FOUND"
	codeBadRequest        = "BAD_REQUEST"
)

// HTTPErrorHandler maps domain errors to coded error bodies. Every failed
// request yields an auth.ErrorResponse, never a partial result.
func HTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "http_errors"))

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := translate(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Error("write error response failed", slog.Any("error", writeErr))
		}
	}
}

func translate(err error) (int, auth.ErrorResponse) {
	var (
		unexpectedPrincipal *auth.UnexpectedPrincipalError
		userNotFound        *auth.UserNotFoundError
		modelFailure        *inference.ModelOperationError
		httpErr             *echo.HTTPError
	)

	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusUnauthorized,
			auth.NewErrorResponse(auth.CodeNotAuthenticated, "user not authenticated")
	case errors.Is(err, auth.ErrAnonymousPrincipal):
		return http.StatusUnauthorized,
			auth.NewErrorResponse(auth.CodeAnonymousPrincipal, "authentication did not attach an identity")
	case errors.As(err, &unexpectedPrincipal):
		return http.StatusInternalServerError,
			auth.NewErrorResponse(auth.CodeInternal, unexpectedPrincipal.Error())
	case errors.As(err, &userNotFound):
		return http.StatusNotFound,
			auth.NewErrorResponse(auth.CodeUserNotFound, userNotFound.Error())
	case errors.Is(err, users.ErrSubjectExists), errors.Is(err, users.ErrEmailExists):
		return http.StatusConflict,
			auth.NewErrorResponse(codeAlreadyRegistered, err.Error())
	case errors.Is(err, journal.ErrEntryNotFound):
		return http.StatusNotFound,
			auth.NewErrorResponse(codeEntryNotFound, err.Error())
	case errors.Is(err, journal.ErrAccessDenied):
		return http.StatusForbidden,
			auth.NewErrorResponse(auth.CodeAccessDenied, "access denied")
	case errors.As(err, &modelFailure):
		return http.StatusBadGateway,
			auth.NewErrorResponse(auth.CodeModelFailure, modelFailure.Error())
	case errors.As(err, &httpErr):
		return httpErr.Code, auth.NewErrorResponse(codeForStatus(httpErr.Code), httpMessage(httpErr))
	default:
		return http.StatusInternalServerError,
			auth.NewErrorResponse(auth.CodeInternal, "internal server error")
	}
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return auth.CodeTokenAuthFailed
	case status == http.StatusNotFound:
		return "NOT_FOUND"
	case status >= http.StatusInternalServerError:
		return auth.CodeInternal
	default:
		return codeBadRequest
	}
}

func httpMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}
