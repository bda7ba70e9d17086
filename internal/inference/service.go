package inference

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/metrics"
	"github.com/braincarehq/backend/internal/users"
)

// Feature defaults applied when a metric type has no recent measurement.
// EEG and GSR channels have no wearable source yet and always use baselines.
const (
	defaultHeartRate    = 75.0
	defaultSteps        = 5000.0
	defaultSleepHours   = 7.0
	defaultTemperature  = 37.0
	baselineEEGAlpha    = 8.5
	baselineEEGBeta     = 15.0
	baselineEEGGamma    = 30.0
	baselineEEGTheta    = 6.0
	baselineEEGDelta    = 2.0
	baselineGSR         = 5.0
	moderateActivity    = 2
	metricsLookbackTime = 24 * time.Hour
)

// Caller abstracts the inference client for tests.
type Caller interface {
	Analyze(ctx context.Context, modelName string, req FeatureRequest) (Result, error)
}

// Service assembles the feature payload for a caller and runs a single model.
type Service struct {
	client  Caller
	users   *users.Service
	metrics *metrics.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new inference orchestration service.
func NewService(log *slog.Logger, client Caller, usersService *users.Service, metricsService *metrics.Service) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		client:  client,
		users:   usersService,
		metrics: metricsService,
		logger:  log.With(slog.String("service", "inference")),
		now:     time.Now,
	}
}

// RunModel resolves the caller, gathers their recent measurements, and runs
// the named model. When the caller has no recent measurements or the
// inference service is unavailable, a canned response is returned so clients
// always receive a well-formed result.
func (s *Service) RunModel(ctx context.Context, subject, modelName string) (Result, error) {
	modelName = strings.ToLower(strings.TrimSpace(modelName))
	if modelName == "" {
		return Result{}, errors.New("model name is required")
	}

	user, err := s.users.BySubject(ctx, subject)
	if err != nil {
		var notFound *auth.UserNotFoundError
		if errors.As(err, &notFound) {
			return Result{}, err
		}
		return Result{}, &ModelOperationError{Op: "load user", Err: err}
	}

	since := s.now().Add(-metricsLookbackTime)
	recent, err := s.metrics.RecentByTypes(ctx, subject, metrics.CoreTypes, since)
	if err != nil {
		return Result{}, &ModelOperationError{Op: "load metrics", Err: err}
	}
	if len(recent) == 0 {
		s.logger.Info("no recent metrics, serving canned result",
			slog.String("model", modelName),
			slog.Int64("user_id", user.ID),
		)
		return mockResult(modelName), nil
	}

	req := s.buildFeatureRequest(user, recent)
	result, err := s.client.Analyze(ctx, modelName, req)
	if err != nil {
		s.logger.Warn("inference service unavailable, serving canned result",
			slog.String("model", modelName),
			slog.Any("error", err),
		)
		return mockResult(modelName), nil
	}

	result.ModelName = modelName
	result.Timestamp = s.now().UTC().Format(time.RFC3339)
	return result, nil
}

// buildFeatureRequest maps recent measurements onto the model feature vector,
// filling gaps with baseline values. The newest measurement of each type wins.
func (s *Service) buildFeatureRequest(user users.User, recent []metrics.Metric) FeatureRequest {
	byType := make(map[string]float64, len(recent))
	for _, m := range recent {
		if _, seen := byType[m.Type]; !seen {
			byType[m.Type] = m.Value
		}
	}
	valueOr := func(metricType string, fallback float64) float64 {
		if v, ok := byType[metricType]; ok {
			return v
		}
		return fallback
	}

	now := s.now()
	// ISO weekday (Mon=1..Sun=7), matching the model training data.
	dayOfWeek := int(now.Weekday())
	if dayOfWeek == 0 {
		dayOfWeek = 7
	}
	gender := 0
	if strings.EqualFold(user.Gender, "male") {
		gender = 1
	}

	return FeatureRequest{
		HeartRate:     valueOr(metrics.TypeHeartRate, defaultHeartRate),
		ActivityLevel: valueOr(metrics.TypeSteps, defaultSteps) / 1000.0,
		SleepQuality:  valueOr(metrics.TypeSleepHours, defaultSleepHours),
		SkinTemp:      valueOr(metrics.TypeTemperature, defaultTemperature),
		EEGAlpha:      baselineEEGAlpha,
		EEGBeta:       baselineEEGBeta,
		EEGGamma:      baselineEEGGamma,
		EEGTheta:      baselineEEGTheta,
		EEGDelta:      baselineEEGDelta,
		GSR:           baselineGSR,
		HourOfDay:     now.Hour(),
		DayOfWeek:     dayOfWeek,
		TimeOfDay:     now.Hour(),
		UserID:        user.ID,
		Age:           user.Age,
		Gender:        gender,
		ActivityType:  moderateActivity,
	}
}
