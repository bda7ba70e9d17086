package auth

import (
	"errors"
	"fmt"
)

// Errors returned by identity resolution.
var (
	ErrNotAuthenticated   = errors.New("no authenticated principal for the current request")
	ErrAnonymousPrincipal = errors.New("authentication principal is an anonymous marker")
)

// UnexpectedPrincipalError reports a principal value outside the known
// variant set. TypeName carries the observed runtime type for diagnostics.
type UnexpectedPrincipalError struct {
	TypeName string
}

func (e *UnexpectedPrincipalError) Error() string {
	return fmt.Sprintf("unexpected authentication principal type: %s", e.TypeName)
}

// UserNotFoundError reports that a verified subject has no matching
// application user record.
type UserNotFoundError struct {
	Subject string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found with subject: %s", e.Subject)
}
