package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"metanoia_app_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler(t *testing.T) {
	database := setupTestDB(t)
	page := createLandingPage(t, database, "retiro", true)
	createLead(t, database, page.ID, "Ana")
	createLead(t, database, page.ID, "Bia")

	t.Run("full page", func(t *testing.T) {
		c, rec := adminContext(httptest.NewRequest(http.MethodGet, "/admin", nil))

		require.NoError(t, DashboardHandler(c))
		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, "<!DOCTYPE html>")
		assert.Contains(t, body, "Painel")
		assert.NotContains(t, body, "stat-failed")
	})

	t.Run("stats fragment", func(t *testing.T) {
		c, rec := adminContext(htmx(httptest.NewRequest(http.MethodGet, "/admin?fragment=stats", nil)))

		require.NoError(t, DashboardHandler(c))
		body := rec.Body.String()
		assert.NotContains(t, body, "<!DOCTYPE html>")
		assert.Contains(t, body, `hx-get="/admin?fragment=stats"`)
	})

	t.Run("missing table shows a dash", func(t *testing.T) {
		require.NoError(t, database.Migrator().DropTable("talks"))

		c, rec := adminContext(httptest.NewRequest(http.MethodGet, "/admin", nil))

		require.NoError(t, DashboardHandler(c))
		assert.Contains(t, rec.Body.String(), "stat-failed")
	})
}

func TestDashboardStatsAPIHandler(t *testing.T) {
	database := setupTestDB(t)
	page := createLandingPage(t, database, "retiro", true)
	createLead(t, database, page.ID, "Ana")

	c, rec := adminContext(httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil))

	require.NoError(t, DashboardStatsAPIHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats services.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Counts[services.CollectionLandingPages])
	assert.Equal(t, int64(1), stats.Counts[services.CollectionLeads])
	assert.Empty(t, stats.Failed)
	assert.False(t, stats.Loading)
}
