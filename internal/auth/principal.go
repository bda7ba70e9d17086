// Package auth provides token verification, the authenticated principal
// model, and resolution of the caller's identity to an application user.
package auth

import "github.com/labstack/echo/v4"

// Principal is the identity attached to an authenticated request. The set of
// variants is closed: UserPrincipal, SubjectPrincipal, and AnonymousPrincipal.
type Principal interface {
	isPrincipal()
}

// UserPrincipal is the normal authenticated case: a verified token with a
// subject plus the claim set the verifier extracted from it.
type UserPrincipal struct {
	Subject string
	Email   string
	Roles   []string
}

func (UserPrincipal) isPrincipal() {}

// SubjectPrincipal carries a verified subject with no further claims.
type SubjectPrincipal struct {
	Subject string
}

func (SubjectPrincipal) isPrincipal() {}

// AnonymousPrincipal marks a request where the upstream verification step did
// not attach a proper identity even though some raw value is present. It never
// maps to a user record.
type AnonymousPrincipal struct {
	Value string
}

func (AnonymousPrincipal) isPrincipal() {}

// Authentication is the per-request authentication record. It is installed by
// the JWT middleware and passed to the resolver explicitly.
type Authentication struct {
	Principal     Principal
	Authenticated bool
}

const authenticationContextKey = "authentication"

// SetContext stores the authentication record on the request context.
func SetContext(c echo.Context, authn Authentication) {
	c.Set(authenticationContextKey, authn)
}

// FromContext returns the authentication record for the current request, if
// the middleware installed one.
func FromContext(c echo.Context) (Authentication, bool) {
	authn, ok := c.Get(authenticationContextKey).(Authentication)
	return authn, ok
}
