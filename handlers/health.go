package handlers

import (
	"net/http"

	"metanoia_app_go/db"

	"github.com/labstack/echo/v4"
	zlog "github.com/rs/zerolog/log"
)

// HealthHandler reports whether the database answers
func HealthHandler(c echo.Context) error {
	if db.DB == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		zlog.Error().Err(err).Msg("Health check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
