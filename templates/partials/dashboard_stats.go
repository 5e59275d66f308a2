package partials

import (
	"context"

	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"

	"github.com/a-h/templ"
)

// dashboardCards is the display order of the counters
var dashboardCards = []string{
	services.CollectionLandingPages,
	services.CollectionLeads,
	services.CollectionTalks,
	services.CollectionCourses,
	services.CollectionContents,
	services.CollectionContacts,
	services.CollectionUsers,
}

// DashboardStats renders one card per collection. A failed count shows a dash, never 0.
func DashboardStats(ctx context.Context, stats services.DashboardStats) templ.Component {
	return components.Render(func(h *HTML) {
		h.Raw(`<div id="dashboard-stats" class="stats-grid" hx-get="/admin?fragment=stats" hx-trigger="every 60s" hx-swap="outerHTML">`)
		for _, name := range dashboardCards {
			h.Raw(`<div class="stat-card"`).Attr("data-collection", name).Raw(`>`)
			h.Raw(`<span class="stat-label">`).Text(i18n.T(ctx, "admin.dashboard."+name)).Raw(`</span>`)
			if stats.HasFailed(name) {
				h.Raw(`<span class="stat-value stat-failed"`).Attr("title", i18n.T(ctx, "admin.dashboard.unavailable")).Raw(`>—</span>`)
			} else {
				h.Raw(`<span class="stat-value">`).Text(itoa(stats.Count(name))).Raw(`</span>`)
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
	})
}
