package auth

import (
	"context"
	"fmt"
)

// UserRef is the slice of the user record the resolver needs.
type UserRef struct {
	ID    int64
	Email string
}

// UserLookup maps a verified subject to an application user record. The
// second return reports whether a record exists.
type UserLookup interface {
	BySubject(ctx context.Context, subject string) (UserRef, bool, error)
}

// Resolver translates an authentication record into the identity values
// business logic needs. It holds no state across calls; every failure is
// immediate and non-retriable.
type Resolver struct {
	users UserLookup
}

// NewResolver creates a resolver backed by the given user lookup.
func NewResolver(users UserLookup) *Resolver {
	return &Resolver{users: users}
}

// Subject returns the caller's external identifier from the authentication
// record. Pure read; no lookup.
func (r *Resolver) Subject(authn Authentication) (string, error) {
	if authn.Principal == nil || !authn.Authenticated {
		return "", ErrNotAuthenticated
	}
	switch p := authn.Principal.(type) {
	case UserPrincipal:
		return p.Subject, nil
	case SubjectPrincipal:
		return p.Subject, nil
	case AnonymousPrincipal:
		return "", ErrAnonymousPrincipal
	default:
		// Unreachable for principals built by this package; kept for values
		// injected from outside the sealed set.
		return "", &UnexpectedPrincipalError{TypeName: fmt.Sprintf("%T", p)}
	}
}

// LoggedInEmail resolves the caller's subject and returns the email of the
// matching user record.
func (r *Resolver) LoggedInEmail(ctx context.Context, authn Authentication) (string, error) {
	ref, err := r.lookup(ctx, authn)
	if err != nil {
		return "", err
	}
	return ref.Email, nil
}

// LoggedInUserID resolves the caller's subject and returns the internal
// numeric id of the matching user record.
func (r *Resolver) LoggedInUserID(ctx context.Context, authn Authentication) (int64, error) {
	ref, err := r.lookup(ctx, authn)
	if err != nil {
		return 0, err
	}
	return ref.ID, nil
}

func (r *Resolver) lookup(ctx context.Context, authn Authentication) (UserRef, error) {
	subject, err := r.Subject(authn)
	if err != nil {
		return UserRef{}, err
	}
	ref, found, err := r.users.BySubject(ctx, subject)
	if err != nil {
		return UserRef{}, err
	}
	if !found {
		return UserRef{}, &UserNotFoundError{Subject: subject}
	}
	return ref, nil
}
