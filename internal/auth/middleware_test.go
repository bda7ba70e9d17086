package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Use(JWTMiddleware(testSecret, func(c echo.Context) bool {
		return c.Request().URL.Path == "/open"
	}))
	e.GET("/open", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/whoami", func(c echo.Context) error {
		authn, ok := FromContext(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		subject, err := NewResolver(nil).Subject(authn)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, subject)
	})
	return e
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	e := newTestServer(t)
	token, _, err := Sign("sub-1", "jane@braincare.test", nil, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "sub-1" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "sub-1")
	}
}

func TestJWTMiddlewareRejectsBadToken(t *testing.T) {
	e := newTestServer(t)
	tests := []struct {
		name  string
		setup func(req *http.Request)
	}{
		{"missing header", func(*http.Request) {}},
		{"garbage token", func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
		}},
		{"wrong secret", func(req *http.Request) {
			token, _, err := Sign("sub-1", "", nil, "other-secret", time.Hour)
			if err != nil {
				t.Fatalf("Sign() error = %v", err)
			}
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}},
		{"expired", func(req *http.Request) {
			token, _, err := Sign("sub-1", "", nil, testSecret, -time.Hour)
			if err != nil {
				t.Fatalf("Sign() error = %v", err)
			}
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.ErrorCode != CodeTokenAuthFailed {
				t.Errorf("errorCode = %q, want %q", body.ErrorCode, CodeTokenAuthFailed)
			}
			if body.Timestamp == 0 {
				t.Error("timestamp not set")
			}
		})
	}
}

func TestJWTMiddlewareSkipper(t *testing.T) {
	e := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
