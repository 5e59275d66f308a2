package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"metanoia_app_go/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAuditContext(t *testing.T) {
	e := echo.New()

	t.Run("FullContext", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", "test-agent")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		c.Set(ContextKeyUser, &models.User{ID: "user-123", Name: "Test User", Role: models.RoleAdmin})

		handler := AuditContext()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))

		actx := GetAuditContext(c)
		assert.Equal(t, "user-123", actx.UserID)
		assert.Equal(t, "Test User", actx.UserName)
		assert.Equal(t, "test-agent", actx.UserAgent)
	})

	t.Run("NoAuth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := AuditContext()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))

		actx := GetAuditContext(c)
		assert.Empty(t, actx.UserID)
		assert.NotEmpty(t, actx.IPAddress)
	})

	t.Run("MissingMiddleware", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		assert.Empty(t, GetAuditContext(c).UserName)
	})
}
