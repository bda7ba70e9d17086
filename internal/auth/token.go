package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set carried by access tokens. Subject holds the
// external identifier issued by the authentication provider.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Sign mints an HMAC-signed access token for the given subject. Used for
// local development and tests; token issuance is otherwise external.
func Sign(subject, email string, roles []string, secret string, expiresIn time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, errors.New("subject is required")
	}
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("jwt secret is required")
	}
	now := time.Now()
	expiresAt := now.Add(expiresIn)
	claims := Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse verifies an access token and returns its claims.
func Parse(tokenString, secret string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, errors.New("token has no subject")
	}
	return claims, nil
}

// PrincipalFromClaims builds the principal variant for a verified claim set:
// a claim-bearing token yields a UserPrincipal, a bare subject yields a
// SubjectPrincipal.
func PrincipalFromClaims(claims Claims) Principal {
	if claims.Email != "" || len(claims.Roles) > 0 {
		return UserPrincipal{
			Subject: claims.Subject,
			Email:   claims.Email,
			Roles:   claims.Roles,
		}
	}
	return SubjectPrincipal{Subject: claims.Subject}
}
