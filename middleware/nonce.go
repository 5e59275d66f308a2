package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"

	"metanoia_app_go/config"

	"github.com/labstack/echo/v4"
	zlog "github.com/rs/zerolog/log"
)

type contextKey string

const NonceKey contextKey = "csp_nonce"

// GenerateNonce creates a random nonce string
func GenerateNonce() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// CSPNonce middleware generates a nonce for each request and adds it to the context
func CSPNonce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				zlog.Error().Err(err).Msg("Failed to generate nonce")
				nonce = "fallback-nonce-value"
			}

			// Echo context for handlers, request context for templ
			c.Set(string(NonceKey), nonce)
			ctx := context.WithValue(c.Request().Context(), NonceKey, nonce)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Header().Set("Content-Security-Policy", buildCSP(nonce, qrOrigin(c)))

			return next(c)
		}
	}
}

// buildCSP allows the banner video players, the Turnstile widget and remote banner images.
// 'unsafe-eval' stays for Alpine.js.
func buildCSP(nonce, qrHost string) string {
	img := "'self' data: https:"
	if qrHost != "" && qrHost != "https:" {
		img += " " + qrHost
	}
	return fmt.Sprintf("default-src 'self'; "+
		"script-src 'self' 'nonce-%s' 'unsafe-eval' https://unpkg.com https://static.cloudflareinsights.com https://challenges.cloudflare.com; "+
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; "+
		"img-src %s; "+
		"media-src 'self' https:; "+
		"font-src 'self' https://fonts.gstatic.com; "+
		"connect-src 'self' https://unpkg.com https://cloudflareinsights.com https://challenges.cloudflare.com; "+
		"frame-src https://www.youtube.com https://player.vimeo.com https://challenges.cloudflare.com",
		nonce, img)
}

// qrOrigin is the origin of a non-https QR service, e.g. a local renderer in development
func qrOrigin(c echo.Context) string {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok || cfg.QRServiceURL == "" {
		return ""
	}
	u, err := url.Parse(cfg.QRServiceURL)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme == "https" {
		return "https:"
	}
	return u.Scheme + "://" + u.Host
}

// GetNonce retrieves the nonce from the context
func GetNonce(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(NonceKey).(string); ok {
		return val
	}
	return ""
}
