package pages

import (
	"context"
	"net/url"
	"strconv"

	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"

	"github.com/a-h/templ"
)

// AdminLeadsView backs the lead list
type AdminLeadsView struct {
	Leads      []models.Lead
	Pages      []models.LandingPage
	SelectedID string
}

func (v AdminLeadsView) exportURL(format string) string {
	q := url.Values{"format": {format}}
	if v.SelectedID != "" {
		q.Set("landing_page_id", v.SelectedID)
	}
	return "/admin/leads/export?" + q.Encode()
}

// AdminLeads lists leads with a landing page filter and export links
func AdminLeads(ctx context.Context, csrfToken string, user *models.User, view AdminLeadsView) templ.Component {
	title := i18n.T(ctx, "admin.leads.title")
	body := components.Render(func(h *HTML) {
		h.Raw(`<div class="page-header"><h1>`).Text(title).Raw(` <small>(`).Text(strconv.Itoa(len(view.Leads))).Raw(`)</small></h1>`)
		h.Raw(`<div class="actions"><a class="btn btn-secondary"`).Attr("href", view.exportURL("csv")).Raw(`>`).Text(i18n.T(ctx, "admin.leads.export_csv")).Raw(`</a>`)
		h.Raw(`<a class="btn btn-secondary"`).Attr("href", view.exportURL("xlsx")).Raw(`>`).Text(i18n.T(ctx, "admin.leads.export_xlsx")).Raw(`</a></div></div>`)

		h.Raw(`<form method="get" action="/admin/leads" class="filter"><select name="landing_page_id" x-data @change="$el.form.requestSubmit()">`)
		h.Raw(`<option value="">`).Text(i18n.T(ctx, "admin.leads.all_pages")).Raw(`</option>`)
		for _, p := range view.Pages {
			h.Raw(`<option`).Attr("value", p.ID).AttrIf(p.ID == view.SelectedID, "selected").Raw(`>`).Text(p.DisplayName()).Raw(`</option>`)
		}
		h.Raw(`</select><noscript><button type="submit">`).Text(i18n.T(ctx, "admin.leads.filter")).Raw(`</button></noscript></form>`)

		if len(view.Leads) == 0 {
			h.Raw(`<p class="empty">`).Text(i18n.T(ctx, "admin.leads.empty")).Raw(`</p>`)
			return
		}

		h.Raw(`<table class="table"><thead><tr>`)
		for _, col := range []string{"lead.name", "lead.whatsapp", "lead.email", "lead.age", "admin.leads.landing_page", "admin.leads.date"} {
			h.Raw(`<th>`).Text(i18n.T(ctx, col)).Raw(`</th>`)
		}
		h.Raw(`</tr></thead><tbody>`)
		for _, lead := range view.Leads {
			h.Raw(`<tr><td>`).Text(lead.Name).Raw(`</td>`)
			h.Raw(`<td><a target="_blank" rel="noopener"`).Attr("href", whatsAppLink(lead.WhatsApp)).Raw(`>`).Text(lead.WhatsApp).Raw(`</a></td>`)
			h.Raw(`<td><a`).Attr("href", "mailto:"+lead.Email).Raw(`>`).Text(lead.Email).Raw(`</a></td>`)
			h.Raw(`<td>`).Text(strconv.Itoa(lead.Age)).Raw(`</td>`)
			if lead.IsOrphaned() {
				h.Raw(`<td class="muted">`).Text(i18n.T(ctx, "admin.leads.page_removed")).Raw(`</td>`)
			} else {
				h.Raw(`<td>`).Text(lead.LandingPage.DisplayName()).Raw(`</td>`)
			}
			h.Raw(`<td>`).Text(services.FormatDateBR(lead.CreatedAt)).Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table>`)
	})
	return components.AdminLayout(ctx, title, csrfToken, user, "leads", body)
}

// whatsAppLink opens a chat with the digits of a phone number
func whatsAppLink(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return "https://wa.me/" + string(digits)
}
