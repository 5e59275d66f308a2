package handlers

import (
	"net/http"
	"strings"

	"metanoia_app_go/services"
	"metanoia_app_go/templates/components"
	"metanoia_app_go/templates/pages"

	"github.com/labstack/echo/v4"
	zlog "github.com/rs/zerolog/log"
)

// statusForKind maps the error taxonomy onto HTTP
func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindDuplicateSlug:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse resolves the status and the message shown to the user.
// Internal details never reach the message.
func errorResponse(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		msg, isString := he.Message.(string)
		if !isString || he.Code >= http.StatusInternalServerError {
			msg = http.StatusText(he.Code)
		}
		if he.Code == http.StatusNotFound {
			msg = services.ErrLandingPageNotFound.Message
		}
		return he.Code, msg
	}
	return statusForKind(services.KindOf(err)), services.UserMessage(err)
}

func wantsJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Path(), "/admin/api/") ||
		strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// HTTPErrorHandler is the single place errors become responses: an alert
// fragment for HTMX, JSON for API calls and a full page otherwise.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := errorResponse(err)
	logError(c, status, err)

	var renderErr error
	switch {
	case c.Request().Method == http.MethodHead:
		renderErr = c.NoContent(status)
	case wantsJSON(c):
		renderErr = c.JSON(status, map[string]string{"error": msg})
	case isLeadSubmit(c):
		renderErr = rejectedLeadSubmit(c, err, status, msg)
	case isHTMX(c):
		renderErr = renderStatus(c, status, components.Alert(components.AlertError, msg))
	case status == http.StatusNotFound:
		renderErr = renderStatus(c, status, pages.NotFound(c.Request().Context()))
	default:
		renderErr = renderStatus(c, status, pages.ErrorPage(c.Request().Context(), status, msg))
	}
	if renderErr != nil {
		zlog.Error().Err(renderErr).Msg("Failed to render error response")
	}
}

func logError(c echo.Context, status int, err error) {
	event := zlog.Debug()
	if status >= http.StatusInternalServerError {
		event = zlog.Error()
	}
	event.Err(err).
		Int("status", status).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("Request failed")
}
