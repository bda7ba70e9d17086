package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSignAndParse(t *testing.T) {
	token, expiresAt, err := Sign("sub-1", "jane@braincare.test", []string{"user"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if token == "" {
		t.Fatal("Sign() returned empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Errorf("expiresAt %v not ~1h away", expiresAt)
	}

	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != "sub-1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "sub-1")
	}
	if claims.Email != "jane@braincare.test" {
		t.Errorf("Email = %q, want %q", claims.Email, "jane@braincare.test")
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "user" {
		t.Errorf("Roles = %v, want [user]", claims.Roles)
	}
}

func TestSignValidation(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		secret  string
	}{
		{"empty subject", "", testSecret},
		{"blank subject", "   ", testSecret},
		{"empty secret", "sub-1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Sign(tt.subject, "", nil, tt.secret, time.Hour); err == nil {
				t.Error("Sign() error = nil, want error")
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	valid, _, err := Sign("sub-1", "", nil, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	expired, _, err := Sign("sub-1", "", nil, testSecret, -time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other-secret"},
		{"expired", expired, testSecret},
		{"garbage", "not.a.token", testSecret},
		{"empty", "", testSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.token, tt.secret); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}
}

func TestPrincipalFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   Principal
	}{
		{
			name:   "with email",
			claims: claimsFor("sub-1", "jane@braincare.test", nil),
			want:   UserPrincipal{Subject: "sub-1", Email: "jane@braincare.test"},
		},
		{
			name:   "with roles only",
			claims: claimsFor("sub-2", "", []string{"admin"}),
			want:   UserPrincipal{Subject: "sub-2", Roles: []string{"admin"}},
		},
		{
			name:   "bare subject",
			claims: claimsFor("sub-3", "", nil),
			want:   SubjectPrincipal{Subject: "sub-3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrincipalFromClaims(tt.claims)
			switch want := tt.want.(type) {
			case UserPrincipal:
				up, ok := got.(UserPrincipal)
				if !ok {
					t.Fatalf("PrincipalFromClaims() = %T, want UserPrincipal", got)
				}
				if up.Subject != want.Subject || up.Email != want.Email || len(up.Roles) != len(want.Roles) {
					t.Errorf("PrincipalFromClaims() = %+v, want %+v", up, want)
				}
			case SubjectPrincipal:
				sp, ok := got.(SubjectPrincipal)
				if !ok {
					t.Fatalf("PrincipalFromClaims() = %T, want SubjectPrincipal", got)
				}
				if sp != want {
					t.Errorf("PrincipalFromClaims() = %+v, want %+v", sp, want)
				}
			}
		})
	}
}

func claimsFor(subject, email string, roles []string) Claims {
	claims := Claims{Email: email, Roles: roles}
	claims.Subject = subject
	return claims
}
