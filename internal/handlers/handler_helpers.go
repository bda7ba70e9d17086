package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
)

// requireSubject resolves the caller's external identifier from the request's
// authentication record. Resolution failures propagate to the HTTP error
// handler, which maps them to coded 401/500 bodies.
func requireSubject(c echo.Context, resolver *auth.Resolver) (string, error) {
	authn, _ := auth.FromContext(c)
	return resolver.Subject(authn)
}
