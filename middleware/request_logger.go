package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// RequestLogger writes one structured line per request.
// Static files and health checks are skipped.
func RequestLogger() echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:       skipNoisyPaths,
		LogURI:        true,
		LogMethod:     true,
		LogStatus:     true,
		LogLatency:    true,
		LogRemoteIP:   true,
		LogRequestID:  true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logRequest,
	})
}

func logRequest(c echo.Context, v echomiddleware.RequestLoggerValues) error {
	var event *zerolog.Event
	switch {
	case v.Status >= 500 || (v.Error != nil && v.Status == 0):
		event = zlog.Error().Err(v.Error)
	case v.Status >= 400:
		event = zlog.Warn()
	default:
		event = zlog.Info()
	}

	event.
		Str("method", v.Method).
		Str("uri", v.URI).
		Int("status", v.Status).
		Dur("latency", v.Latency).
		Str("ip", v.RemoteIP).
		Str("request_id", v.RequestID)

	if v.Latency > slowRequestThreshold {
		event.Bool("slow", true)
	}
	if user := GetCurrentUser(c); user != nil {
		event.Str("user_id", user.ID)
	}

	event.Msg("request")
	return nil
}

func skipNoisyPaths(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/healthz" || p == "/metrics" || strings.HasPrefix(p, "/static/")
}

// slowRequestThreshold is the latency above which a request is logged as slow
const slowRequestThreshold = 2 * time.Second
