package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	assert.NotNil(t, rl)
	assert.Equal(t, 10, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.NotNil(t, rl.config.KeyFunc)
	assert.Equal(t, "Muitas requisições. Tente novamente em instantes.", rl.config.Message)
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()

	t.Run("WithinLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 2,
			Window:   time.Second,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		// First request
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		// Second request
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		rec = httptest.NewRecorder()
		c = e.NewContext(req, rec)
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ExceededLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Second,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		// First request (OK)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, handler(c))

		// Second request (Rate Limited)
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		rec = httptest.NewRecorder()
		c = e.NewContext(req, rec)
		err := handler(c)

		assert.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, he.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("SeparateKeys", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Minute,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
			req := httptest.NewRequest(http.MethodPost, "/lp/abc/leads", nil)
			req.Header.Set(echo.HeaderXRealIP, ip)
			rec := httptest.NewRecorder()
			assert.NoError(t, handler(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("WindowExpires", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   50 * time.Millisecond,
		})

		handler := rl.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "success")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

		time.Sleep(80 * time.Millisecond)
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		assert.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	})
}

func TestRateLimiterPruneAndStop(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute})
	now := time.Now()
	rl.store["expired"] = &rateLimitEntry{count: 1, expiresAt: now.Add(-time.Second)}
	rl.store["live"] = &rateLimitEntry{count: 1, expiresAt: now.Add(time.Minute)}

	rl.prune(now)
	assert.NotContains(t, rl.store, "expired")
	assert.Contains(t, rl.store, "live")

	rl.Stop()
	rl.Stop()
	select {
	case <-rl.done:
	default:
		t.Fatal("done channel not closed")
	}
}
