// Package users provides application user records and profile management.
package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/db"
)

// Errors returned by user operations.
var (
	ErrSubjectExists = errors.New("subject already registered")
	ErrEmailExists   = errors.New("email already registered")
)

// Repository persists user records. Lookups return pgx.ErrNoRows when no
// record matches.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	BySubject(ctx context.Context, subject string) (User, error)
	Update(ctx context.Context, user User) (User, error)
}

// Service provides user registration and profile management.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new users service.
func NewService(log *slog.Logger, repo Repository) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: log.With(slog.String("service", "users")),
	}
}

// SignUp registers a new user for a verified subject. The subject and email
// must both be unused.
func (s *Service) SignUp(ctx context.Context, subject string, req SignUpRequest) (User, error) {
	if s.repo == nil {
		return User{}, errors.New("user repository not configured")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return User{}, errors.New("subject is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return User{}, errors.New("email is required")
	}
	dob, err := normalizeDate(req.DateOfBirth)
	if err != nil {
		return User{}, err
	}

	user, err := s.repo.Create(ctx, User{
		Subject:     subject,
		Email:       email,
		Name:        strings.TrimSpace(req.Name),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Gender:      strings.TrimSpace(req.Gender),
		DateOfBirth: dob,
		Age:         req.Age,
	})
	if err != nil {
		constraint := db.UniqueConstraint(err)
		switch {
		case strings.Contains(constraint, "subject"):
			return User{}, ErrSubjectExists
		case strings.Contains(constraint, "email"):
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Profile returns the profile for a verified subject.
func (s *Service) Profile(ctx context.Context, subject string) (User, error) {
	return s.bySubject(ctx, subject)
}

// UpdateProfile applies a partial profile update for a verified subject.
func (s *Service) UpdateProfile(ctx context.Context, subject string, req UpdateProfileRequest) (User, error) {
	user, err := s.bySubject(ctx, subject)
	if err != nil {
		return User{}, err
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Gender != nil {
		user.Gender = strings.TrimSpace(*req.Gender)
	}
	if req.DateOfBirth != nil {
		dob, err := normalizeDate(*req.DateOfBirth)
		if err != nil {
			return User{}, err
		}
		user.DateOfBirth = dob
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	return s.repo.Update(ctx, user)
}

// BySubject returns the user record for a verified subject.
func (s *Service) BySubject(ctx context.Context, subject string) (User, error) {
	return s.bySubject(ctx, subject)
}

func (s *Service) bySubject(ctx context.Context, subject string) (User, error) {
	if s.repo == nil {
		return User{}, errors.New("user repository not configured")
	}
	user, err := s.repo.BySubject(ctx, strings.TrimSpace(subject))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, &auth.UserNotFoundError{Subject: subject}
		}
		return User{}, err
	}
	return user, nil
}

func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, raw); err != nil {
		return "", errors.New("date_of_birth must use the YYYY-MM-DD form")
	}
	return raw, nil
}

// Lookup adapts the users service to the identity resolver's user lookup.
type Lookup struct {
	service *Service
}

// NewLookup creates the resolver lookup over the users service.
func NewLookup(service *Service) Lookup {
	return Lookup{service: service}
}

// BySubject reports the internal id and email for a subject, with found=false
// when the subject has no record.
func (l Lookup) BySubject(ctx context.Context, subject string) (auth.UserRef, bool, error) {
	user, err := l.service.BySubject(ctx, subject)
	if err != nil {
		var notFound *auth.UserNotFoundError
		if errors.As(err, &notFound) {
			return auth.UserRef{}, false, nil
		}
		return auth.UserRef{}, false, err
	}
	return auth.UserRef{ID: user.ID, Email: user.Email}, true, nil
}
