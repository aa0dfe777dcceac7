package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learning/securedapp/internal/api/metrics"
)

// RequirePermission gates a route on the authenticated principal holding the
// named permission. A missing principal is an authentication failure; a
// present principal without the permission is denied with 403, never a
// silent allow.
func RequirePermission(perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				return challenge(c, "authentication required")
			}
			if !principal.Can(perm) {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "missing permission: "+perm)
			}
			return next(c)
		}
	}
}
