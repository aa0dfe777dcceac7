package middleware

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPSRedirect enforces the encrypted-transport policy: any request that
// arrives over plain HTTP is answered with a permanent redirect to the same
// path on the secure port, before any application logic runs. The check
// honours X-Forwarded-Proto so the policy also holds behind a TLS-terminating
// proxy. Applied globally, not per route.
func HTTPSRedirect(securePort string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.TLS != nil || c.Scheme() == "https" {
				return next(c)
			}

			host := req.Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			target := "https://" + net.JoinHostPort(host, securePort) + req.RequestURI

			return c.Redirect(http.StatusPermanentRedirect, target)
		}
	}
}
