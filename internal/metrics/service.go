// Package metrics stores and queries per-user health measurements.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/braincarehq/backend/internal/users"
)

// Repository persists health metrics.
type Repository interface {
	Insert(ctx context.Context, metric Metric) (Metric, error)
	ByUser(ctx context.Context, userID int64) ([]Metric, error)
	ByUserAndType(ctx context.Context, userID int64, metricType string) ([]Metric, error)
	RecentByTypes(ctx context.Context, userID int64, types []string, since time.Time) ([]Metric, error)
}

// Service provides health metric recording and queries. Callers are
// identified by their verified subject; every operation resolves the owning
// user first.
type Service struct {
	repo   Repository
	users  *users.Service
	logger *slog.Logger
}

// NewService creates a new metrics service.
func NewService(log *slog.Logger, repo Repository, usersService *users.Service) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:   repo,
		users:  usersService,
		logger: log.With(slog.String("service", "metrics")),
	}
}

// Save records a measurement for the caller.
func (s *Service) Save(ctx context.Context, subject string, req SaveRequest) (Metric, error) {
	if s.repo == nil {
		return Metric{}, errors.New("metrics repository not configured")
	}
	metricType := strings.TrimSpace(req.Type)
	if metricType == "" {
		return Metric{}, errors.New("metric type is required")
	}
	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		return Metric{}, err
	}
	return s.repo.Insert(ctx, Metric{
		UserID: user.ID,
		Type:   metricType,
		Value:  req.Value,
		Source: strings.TrimSpace(req.Source),
	})
}

// ListBySubject returns all measurements recorded by the caller.
func (s *Service) ListBySubject(ctx context.Context, subject string) ([]Metric, error) {
	if s.repo == nil {
		return nil, errors.New("metrics repository not configured")
	}
	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.repo.ByUser(ctx, user.ID)
}

// ListByType returns the caller's measurements of one type.
func (s *Service) ListByType(ctx context.Context, subject, metricType string) ([]Metric, error) {
	if s.repo == nil {
		return nil, errors.New("metrics repository not configured")
	}
	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.repo.ByUserAndType(ctx, user.ID, strings.TrimSpace(metricType))
}

// RecentByTypes returns the caller's measurements of the given types recorded
// after since. Used by the analysis pipeline.
func (s *Service) RecentByTypes(ctx context.Context, subject string, types []string, since time.Time) ([]Metric, error) {
	if s.repo == nil {
		return nil, errors.New("metrics repository not configured")
	}
	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.repo.RecentByTypes(ctx, user.ID, types, since)
}
