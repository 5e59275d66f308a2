package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// CSRFFormField is the hidden form field carrying the token
const CSRFFormField = "_csrf"

// CSRF protects admin and public forms. Tokens are read from the form field
// or the X-CSRF-Token header sent by HTMX.
func CSRF(secure bool) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "form:" + CSRFFormField + ",header:X-CSRF-Token",
		CookieName:     csrfCookieName,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || p == "/healthz"
		},
	})
}

// csrfCookieName holds the token between requests
const csrfCookieName = "_csrf"

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests.
// When the middleware rejected the request the context is empty and the
// cookie still carries the token, so re-rendered forms can be resent.
func GetCSRFToken(c echo.Context) string {
	if token, ok := c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string); ok {
		return token
	}
	if req := c.Request(); req != nil {
		if cookie, err := req.Cookie(csrfCookieName); err == nil {
			return cookie.Value
		}
	}
	return ""
}
