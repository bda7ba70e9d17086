// Package journal stores per-user journal entries with ownership checks.
package journal

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/braincarehq/backend/internal/users"
)

// Errors returned by journal operations.
var (
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrAccessDenied  = errors.New("journal entry belongs to another user")
)

// Repository persists journal entries. ByID returns pgx.ErrNoRows when no
// entry matches.
type Repository interface {
	Insert(ctx context.Context, entry Entry) (Entry, error)
	ByUser(ctx context.Context, userID int64) ([]Entry, error)
	ByID(ctx context.Context, id int64) (Entry, error)
	Delete(ctx context.Context, id int64) error
}

// Service provides journal entry management. Reads and deletes of a single
// entry enforce that the entry belongs to the caller.
type Service struct {
	repo   Repository
	users  *users.Service
	logger *slog.Logger
}

// NewService creates a new journal service.
func NewService(log *slog.Logger, repo Repository, usersService *users.Service) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:   repo,
		users:  usersService,
		logger: log.With(slog.String("service", "journal")),
	}
}

// Save records a new entry for the caller.
func (s *Service) Save(ctx context.Context, subject string, req SaveRequest) (Entry, error) {
	if s.repo == nil {
		return Entry{}, errors.New("journal repository not configured")
	}
	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		return Entry{}, err
	}
	return s.repo.Insert(ctx, Entry{
		UserID:       user.ID,
		Content:      strings.TrimSpace(req.Content),
		MoodRating:   req.MoodRating,
		MoodTags:     strings.TrimSpace(req.MoodTags),
		StressRating: req.StressRating,
		Emotions:     strings.TrimSpace(req.Emotions),
	})
}

// List returns all of the caller's entries.
func (s *Service) List(ctx context.Context, subject string) ([]Entry, error) {
	if s.repo == nil {
		return nil, errors.New("journal repository not configured")
	}
	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.repo.ByUser(ctx, user.ID)
}

// Get returns one entry owned by the caller.
func (s *Service) Get(ctx context.Context, subject string, id int64) (Entry, error) {
	entry, _, err := s.owned(ctx, subject, id)
	return entry, err
}

// Delete removes one entry owned by the caller.
func (s *Service) Delete(ctx context.Context, subject string, id int64) error {
	_, _, err := s.owned(ctx, subject, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) owned(ctx context.Context, subject string, id int64) (Entry, users.User, error) {
	if s.repo == nil {
		return Entry{}, users.User{}, errors.New("journal repository not configured")
	}
	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		return Entry{}, users.User{}, err
	}
	entry, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, users.User{}, ErrEntryNotFound
		}
		return Entry{}, users.User{}, err
	}
	if entry.UserID != user.ID {
		return Entry{}, users.User{}, ErrAccessDenied
	}
	return entry, user, nil
}
