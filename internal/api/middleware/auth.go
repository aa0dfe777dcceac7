package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/learning/securedapp/internal/api/metrics"
	"github.com/learning/securedapp/internal/core/domain"
)

// principalKey is the context key under which the authenticated principal is
// stored. Handlers retrieve it with PrincipalFrom, never from a global.
const principalKey = "principal"

// Auth validates the bearer token and injects an explicit domain.Principal
// into the request context. Requests without a valid token receive a 401
// challenge and never reach the handler.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return challenge(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return challenge(c, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return challenge(c, "invalid token")
			}

			username, _ := claims["username"].(string)
			if username == "" {
				return challenge(c, "token missing identity")
			}

			c.Set(principalKey, &domain.Principal{
				Username:    username,
				Roles:       stringsClaim(claims, "roles"),
				Permissions: stringsClaim(claims, "permissions"),
			})

			return next(c)
		}
	}
}

// PrincipalFrom returns the authenticated principal, or nil when the auth
// middleware did not run for this request.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

func challenge(c echo.Context, msg string) error {
	metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="securedapp"`)
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

// stringsClaim reads a []string claim, tolerating the []any shape JSON
// decoding produces.
func stringsClaim(claims jwt.MapClaims, name string) []string {
	raw, ok := claims[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
