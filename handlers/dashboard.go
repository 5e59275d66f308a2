package handlers

import (
	"net/http"

	"metanoia_app_go/db"
	"metanoia_app_go/middleware"
	"metanoia_app_go/services"
	"metanoia_app_go/templates/pages"
	"metanoia_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// DashboardHandler renders the admin home with the collection counters.
// ?fragment=stats returns only the counters for the periodic HTMX refresh.
func DashboardHandler(c echo.Context) error {
	ctx := c.Request().Context()
	stats := services.NewDashboardService(db.DB).Stats(ctx)

	if isHTMX(c) && c.QueryParam("fragment") == "stats" {
		return render(c, partials.DashboardStats(ctx, stats))
	}
	return render(c, pages.Dashboard(ctx, middleware.GetCSRFToken(c), middleware.GetCurrentUser(c), stats))
}

// DashboardStatsAPIHandler returns {counts, failed, loading}
func DashboardStatsAPIHandler(c echo.Context) error {
	stats := services.NewDashboardService(db.DB).Stats(c.Request().Context())
	return c.JSON(http.StatusOK, stats)
}
