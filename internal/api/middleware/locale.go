package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	localeParam  = "lang"
	localeCookie = "locale"
	localeMaxAge = 365 * 24 * time.Hour
)

// LocaleSwitch stores an optional ?lang= request parameter in a cookie so
// subsequent responses keep the chosen locale. Runs after the security
// middleware; it has no bearing on access decisions.
func LocaleSwitch() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if lang := c.QueryParam(localeParam); lang != "" {
				c.SetCookie(&http.Cookie{
					Name:     localeCookie,
					Value:    lang,
					Path:     "/",
					MaxAge:   int(localeMaxAge.Seconds()),
					Secure:   true,
					HttpOnly: true,
				})
			}
			return next(c)
		}
	}
}

// LocaleFrom resolves the request locale: the lang parameter wins, then the
// cookie, then the fallback.
func LocaleFrom(c echo.Context, fallback string) string {
	if lang := c.QueryParam(localeParam); lang != "" {
		return lang
	}
	if cookie, err := c.Cookie(localeCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return fallback
}
