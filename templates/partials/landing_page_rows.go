package partials

import (
	"context"

	"metanoia_app_go/models"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"

	"github.com/a-h/templ"
)

// LandingPageRowsID is the tbody swapped by the list search
const LandingPageRowsID = "landing-page-rows"

// LandingPageRow is one console list entry
type LandingPageRow struct {
	Page      models.LandingPage
	Leads     int64
	PublicURL string
}

// LandingPageRows renders the list body, or an empty-state row
func LandingPageRows(ctx context.Context, csrfToken string, rows []LandingPageRow) templ.Component {
	return components.Render(func(h *HTML) {
		h.Raw(`<tbody`).Attr("id", LandingPageRowsID).Raw(`>`)
		if len(rows) == 0 {
			h.Raw(`<tr class="empty"><td colspan="5">`).Text(i18n.T(ctx, "admin.landing_pages.empty")).Raw(`</td></tr>`)
		}
		for _, row := range rows {
			h.Component(LandingPageRowItem(ctx, csrfToken, row))
		}
		h.Raw(`</tbody>`)
	})
}

// LandingPageRowItem renders one row; toggling swaps just this row
func LandingPageRowItem(ctx context.Context, csrfToken string, row LandingPageRow) templ.Component {
	page := row.Page
	base := "/admin/landing-pages/" + page.ID
	return components.Render(func(h *HTML) {
		h.Raw(`<tr`).Attr("id", "lp-"+page.ID).Raw(`>`)
		h.Raw(`<td><strong>`).Text(page.DisplayName()).Raw(`</strong><br><code>/lp/`).Text(page.Slug).Raw(`</code></td>`)
		h.Raw(`<td>`).Text(page.Title).Raw(`</td>`)

		h.Raw(`<td><a`).Attr("href", "/admin/leads?landing_page_id="+page.ID).Raw(`>`).Text(itoa(row.Leads)).Raw(`</a></td>`)

		status, class := "admin.landing_pages.inactive", "badge badge-muted"
		if page.Active {
			status, class = "admin.landing_pages.active", "badge badge-success"
		}
		h.Raw(`<td><span`).Attr("class", class).Raw(`>`).Text(i18n.T(ctx, status)).Raw(`</span></td>`)

		h.Raw(`<td class="actions">`)
		h.Raw(`<a target="_blank" rel="noopener"`).Attr("href", row.PublicURL).Raw(`>`).Text(i18n.T(ctx, "admin.landing_pages.view")).Raw(`</a>`)
		h.Raw(`<button type="button" x-data="{ copied: false }"`).
			Attr("data-link-url", base+"/link").
			Raw(` @click="fetch($el.dataset.linkUrl).then(r => r.json()).then(d => navigator.clipboard.writeText(d.url)).then(() => { copied = true; setTimeout(() => copied = false, 2000) })">`)
		h.Raw(`<span x-show="!copied">`).Text(i18n.T(ctx, "admin.landing_pages.copy_link")).Raw(`</span>`)
		h.Raw(`<span x-show="copied" x-cloak>`).Text(i18n.T(ctx, "admin.landing_pages.copied")).Raw(`</span></button>`)
		h.Raw(`<a target="_blank" rel="noopener"`).Attr("href", base+"/qrcode").Raw(`>`).Text(i18n.T(ctx, "admin.landing_pages.qr_code")).Raw(`</a>`)
		h.Raw(`<a`).Attr("href", base+"/edit").Raw(`>`).Text(i18n.T(ctx, "admin.landing_pages.edit_action")).Raw(`</a>`)

		toggle := "admin.landing_pages.activate"
		if page.Active {
			toggle = "admin.landing_pages.deactivate"
		}
		h.Raw(`<form method="post"`).Attr("action", base+"/toggle").Attr("hx-post", base+"/toggle").Raw(` hx-target="closest tr" hx-swap="outerHTML">`)
		h.Component(components.CSRFField(csrfToken))
		h.Raw(`<button type="submit">`).Text(i18n.T(ctx, toggle)).Raw(`</button></form>`)

		h.Raw(`<form method="post"`).Attr("action", base+"/delete").Attr("hx-post", base+"/delete").
			Attr("hx-confirm", i18n.T(ctx, "admin.landing_pages.delete_confirm")).Raw(` hx-target="closest tr" hx-swap="outerHTML">`)
		h.Component(components.CSRFField(csrfToken))
		h.Raw(`<button type="submit" class="danger">`).Text(i18n.T(ctx, "admin.landing_pages.delete")).Raw(`</button></form>`)
		h.Raw(`</td></tr>`)
	})
}
