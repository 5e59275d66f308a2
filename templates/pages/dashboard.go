package pages

import (
	"context"

	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"
	"metanoia_app_go/templates/partials"

	"github.com/a-h/templ"
)

// Dashboard shows one counter per tracked collection
func Dashboard(ctx context.Context, csrfToken string, user *models.User, stats services.DashboardStats) templ.Component {
	title := i18n.T(ctx, "admin.dashboard.title")
	body := components.Render(func(h *HTML) {
		h.Raw(`<div class="page-header"><h1>`).Text(title).Raw(`</h1></div>`)
		if len(stats.Failed) > 0 {
			h.Component(components.Alert(components.AlertInfo, i18n.T(ctx, "admin.dashboard.partial")))
		}
		h.Component(partials.DashboardStats(ctx, stats))
	})
	return components.AdminLayout(ctx, title, csrfToken, user, "dashboard", body)
}
