package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware verifies bearer tokens and installs the resulting
// Authentication on the request context. Requests matching the skipper pass
// through without an authentication record; verification failures are
// rejected with a coded error body.
func JWTMiddleware(secret string, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper: skipper,
		ParseTokenFunc: func(c echo.Context, tokenString string) (any, error) {
			claims, err := Parse(tokenString, secret)
			if err != nil {
				return nil, err
			}
			authn := Authentication{
				Principal:     PrincipalFromClaims(claims),
				Authenticated: true,
			}
			SetContext(c, authn)
			return authn, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized,
				NewErrorResponse(CodeTokenAuthFailed, "invalid or expired authentication token"))
		},
	})
}
