package handlers

import (
	"net/http"

	"metanoia_app_go/config"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func render(c echo.Context, component templ.Component) error {
	return renderStatus(c, http.StatusOK, component)
}

func renderStatus(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}
