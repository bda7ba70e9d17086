package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/inference"
	"github.com/braincarehq/backend/internal/journal"
	"github.com/braincarehq/backend/internal/metrics"
	"github.com/braincarehq/backend/internal/users"
)

const testSecret = "test-secret"

type userRepoStub struct {
	users map[string]users.User
}

func newUserRepoStub(seed ...users.User) *userRepoStub {
	stub := &userRepoStub{users: make(map[string]users.User)}
	for _, user := range seed {
		stub.users[user.Subject] = user
	}
	return stub
}

func (s *userRepoStub) Create(_ context.Context, user users.User) (users.User, error) {
	user.ID = int64(len(s.users) + 1)
	s.users[user.Subject] = user
	return user, nil
}

func (s *userRepoStub) BySubject(_ context.Context, subject string) (users.User, error) {
	user, ok := s.users[subject]
	if !ok {
		return users.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (s *userRepoStub) Update(_ context.Context, user users.User) (users.User, error) {
	s.users[user.Subject] = user
	return user, nil
}

type journalRepoStub struct {
	entries map[int64]journal.Entry
}

func (s *journalRepoStub) Insert(_ context.Context, entry journal.Entry) (journal.Entry, error) {
	entry.ID = int64(len(s.entries) + 1)
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *journalRepoStub) ByUser(context.Context, int64) ([]journal.Entry, error) {
	return nil, nil
}

func (s *journalRepoStub) ByID(_ context.Context, id int64) (journal.Entry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return journal.Entry{}, pgx.ErrNoRows
	}
	return entry, nil
}

func (s *journalRepoStub) Delete(_ context.Context, id int64) error {
	delete(s.entries, id)
	return nil
}

type metricsRepoStub struct{}

func (metricsRepoStub) Insert(_ context.Context, metric metrics.Metric) (metrics.Metric, error) {
	metric.ID = 1
	return metric, nil
}

func (metricsRepoStub) ByUser(context.Context, int64) ([]metrics.Metric, error) {
	return nil, nil
}

func (metricsRepoStub) ByUserAndType(context.Context, int64, string) ([]metrics.Metric, error) {
	return nil, nil
}

func (metricsRepoStub) RecentByTypes(context.Context, int64, []string, time.Time) ([]metrics.Metric, error) {
	return nil, nil
}

type noopCaller struct{}

func (noopCaller) Analyze(context.Context, string, inference.FeatureRequest) (inference.Result, error) {
	return inference.Result{}, nil
}

func newTestAPI(t *testing.T, seed ...users.User) *echo.Echo {
	t.Helper()
	usersService := users.NewService(nil, newUserRepoStub(seed...))
	metricsService := metrics.NewService(nil, metricsRepoStub{}, usersService)
	journalService := journal.NewService(nil, &journalRepoStub{entries: make(map[int64]journal.Entry)}, usersService)
	inferenceService := inference.NewService(nil, noopCaller{}, usersService, metricsService)
	resolver := auth.NewResolver(users.NewLookup(usersService))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler(nil)
	e.Use(auth.JWTMiddleware(testSecret, func(c echo.Context) bool {
		path := c.Request().URL.Path
		return path == "/ping" || path == "/health"
	}))

	NewPingHandler(nil).Register(e)
	NewAuthHandler(nil, usersService, resolver, nil).Register(e)
	NewProfileHandler(nil, usersService, resolver).Register(e)
	NewMetricsHandler(nil, metricsService, resolver).Register(e)
	NewJournalHandler(nil, journalService, resolver).Register(e)
	NewAnalysisHandler(nil, inferenceService, resolver).Register(e)
	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, path, subject, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if subject != "" {
		token, _, err := auth.Sign(subject, subject+"@braincare.test", nil, testSecret, time.Hour)
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) auth.ErrorResponse {
	t.Helper()
	var body auth.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestPingIsPublic(t *testing.T) {
	e := newTestAPI(t)
	rec := doRequest(t, e, http.MethodGet, "/ping", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMe(t *testing.T) {
	e := newTestAPI(t, users.User{ID: 42, Subject: "sub-42", Email: "sub-42@braincare.test"})
	rec := doRequest(t, e, http.MethodGet, "/api/auth/me", "sub-42", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var resp MeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.UserID != 42 || resp.Subject != "sub-42" || resp.Email != "sub-42@braincare.test" {
		t.Errorf("MeResponse = %+v", resp)
	}
}

func TestMeUnknownSubject(t *testing.T) {
	e := newTestAPI(t)
	rec := doRequest(t, e, http.MethodGet, "/api/auth/me", "ghost", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", rec.Code, rec.Body.String())
	}
	if body := decodeError(t, rec); body.ErrorCode != auth.CodeUserNotFound {
		t.Errorf("errorCode = %q, want %q", body.ErrorCode, auth.CodeUserNotFound)
	}
}

func TestMeNoToken(t *testing.T) {
	e := newTestAPI(t)
	rec := doRequest(t, e, http.MethodGet, "/api/auth/me", "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeError(t, rec); body.ErrorCode != auth.CodeTokenAuthFailed {
		t.Errorf("errorCode = %q, want %q", body.ErrorCode, auth.CodeTokenAuthFailed)
	}
}

func TestSignUpAndProfile(t *testing.T) {
	e := newTestAPI(t)
	rec := doRequest(t, e, http.MethodPost, "/api/auth/signup", "sub-1",
		`{"email":"jane@braincare.test","name":"Jane","age":36}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	var created users.User
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if created.Subject != "sub-1" || created.Email != "jane@braincare.test" {
		t.Errorf("created = %+v", created)
	}

	rec = doRequest(t, e, http.MethodGet, "/api/profile", "sub-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestJournalBadID(t *testing.T) {
	e := newTestAPI(t, users.User{ID: 1, Subject: "sub-1"})
	rec := doRequest(t, e, http.MethodGet, "/api/journal-entries/abc", "sub-1", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
	if body := decodeError(t, rec); body.ErrorCode != codeBadRequest {
		t.Errorf("errorCode = %q, want %q", body.ErrorCode, codeBadRequest)
	}
}

func TestAnalysisServesCannedWithoutMetrics(t *testing.T) {
	e := newTestAPI(t, users.User{ID: 1, Subject: "sub-1"})
	rec := doRequest(t, e, http.MethodGet, "/api/analysis/stress_level_classifier", "sub-1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var result inference.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.ModelName != inference.ModelStressLevel {
		t.Errorf("ModelName = %q, want %q", result.ModelName, inference.ModelStressLevel)
	}
	if len(result.Prediction) == 0 {
		t.Error("prediction empty")
	}
}

func TestSaveMetric(t *testing.T) {
	e := newTestAPI(t, users.User{ID: 3, Subject: "sub-3"})
	rec := doRequest(t, e, http.MethodPost, "/api/health-metrics", "sub-3",
		`{"type":"heart_rate","value":72,"source":"watch"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	var metric metrics.Metric
	if err := json.Unmarshal(rec.Body.Bytes(), &metric); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if metric.UserID != 3 || metric.Type != metrics.TypeHeartRate {
		t.Errorf("metric = %+v", metric)
	}
}
