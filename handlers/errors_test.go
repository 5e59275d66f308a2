package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"metanoia_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", services.NewValidationError("Informe o nome"), http.StatusBadRequest, "Informe o nome"},
		{"duplicate slug", services.ErrDuplicateSlug, http.StatusConflict, "Slug já existe. Escolha outro."},
		{"not found", services.ErrLandingPageNotFound, http.StatusNotFound, "Página não encontrada"},
		{"internal hides detail", services.Internal(errors.New("disk full"), "salvar"), http.StatusInternalServerError, "Erro ao salvar. Tente novamente."},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Erro inesperado. Tente novamente."},
		{"echo 404", echo.ErrNotFound, http.StatusNotFound, "Página não encontrada"},
		{"echo 429", echo.NewHTTPError(http.StatusTooManyRequests, "Calma"), http.StatusTooManyRequests, "Calma"},
		{"echo 500 hides message", echo.NewHTTPError(http.StatusInternalServerError, "sql: oops"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := errorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	setupTestDB(t)

	t.Run("htmx gets an alert fragment", func(t *testing.T) {
		c, rec := newContext(htmx(httptest.NewRequest(http.MethodPost, "/lp/x/leads", nil)))

		HTTPErrorHandler(services.NewValidationError("Informe o nome"), c)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="alert"`)
		assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
	})

	t.Run("json for api routes", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil))
		c.SetPath("/admin/api/stats")

		HTTPErrorHandler(services.Internal(errors.New("db down"), "carregar"), c)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Erro ao carregar. Tente novamente."}`, rec.Body.String())
	})

	t.Run("not found page", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/lp/nada", nil))

		HTTPErrorHandler(services.ErrLandingPageNotFound, c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, rec.Body.String(), "Página não encontrada")
	})

	t.Run("generic error page", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/admin/landing-pages", nil))

		HTTPErrorHandler(services.ErrDuplicateSlug, c)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>409</h1>")
	})

	t.Run("head has no body", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodHead, "/lp/nada", nil))

		HTTPErrorHandler(echo.ErrNotFound, c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestHTTPErrorHandler_RejectedLeadSubmit(t *testing.T) {
	database := setupTestDB(t)
	createLandingPage(t, database, "retiro", true)

	leadPost := func(cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
		form := leadForm()
		form.Set("name", "Diego")
		req := htmx(formRequest(http.MethodPost, "/lp/retiro/leads", form))
		if cookie != nil {
			req.AddCookie(cookie)
		}
		c, rec := newContext(req, "slug", "retiro")
		c.SetPath(leadSubmitRoute)
		return c, rec
	}

	t.Run("rate limited keeps the typed values", func(t *testing.T) {
		c, rec := leadPost(nil)

		HTTPErrorHandler(echo.NewHTTPError(http.StatusTooManyRequests, "Muitas inscrições em sequência. Aguarde um minuto e tente novamente."), c)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `id="lead-form"`)
		assert.Contains(t, body, `value="Diego"`)
		assert.Contains(t, body, `value="ana@x.com"`)
		assert.Contains(t, body, "Muitas inscrições em sequência")
	})

	t.Run("csrf failure re-renders with the cookie token", func(t *testing.T) {
		c, rec := leadPost(&http.Cookie{Name: "_csrf", Value: "tok-from-cookie"})

		HTTPErrorHandler(echo.NewHTTPError(http.StatusForbidden, "invalid csrf token"), c)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `value="Diego"`)
		assert.Contains(t, body, `name="_csrf" value="tok-from-cookie"`)
		assert.Contains(t, body, "Sua sessão expirou. Envie o formulário novamente.")
		assert.NotContains(t, body, "invalid csrf token")
	})

	t.Run("unknown page falls back to the alert", func(t *testing.T) {
		req := htmx(formRequest(http.MethodPost, "/lp/nada/leads", leadForm()))
		c, rec := newContext(req, "slug", "nada")
		c.SetPath(leadSubmitRoute)

		HTTPErrorHandler(echo.NewHTTPError(http.StatusTooManyRequests, "Aguarde"), c)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), `role="alert"`)
		assert.NotContains(t, rec.Body.String(), `id="lead-form"`)
	})
}
