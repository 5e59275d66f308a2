package pages

import (
	"context"
	"fmt"
	"strconv"

	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"
	"metanoia_app_go/templates/partials"

	"github.com/a-h/templ"
)

// AdminLandingPages is the console list with search
func AdminLandingPages(ctx context.Context, csrfToken string, user *models.User, rows []partials.LandingPageRow, query, flash string) templ.Component {
	title := i18n.T(ctx, "admin.landing_pages.title")
	body := components.Render(func(h *HTML) {
		h.Raw(`<div class="page-header"><h1>`).Text(title).Raw(`</h1>`)
		h.Raw(`<a href="/admin/landing-pages/new" class="btn btn-primary">`).Text(i18n.T(ctx, "admin.landing_pages.new")).Raw(`</a></div>`)
		if flash != "" {
			h.Component(components.Alert(components.AlertSuccess, flash))
		}
		h.Raw(`<form method="get" action="/admin/landing-pages" class="search">`)
		h.Raw(`<input type="search" name="q"`).Attr("value", query).Attr("placeholder", i18n.T(ctx, "admin.landing_pages.search")).
			Raw(` hx-get="/admin/landing-pages" hx-trigger="input changed delay:300ms, search"`).
			Attr("hx-target", "#"+partials.LandingPageRowsID).Raw(` hx-swap="outerHTML" hx-push-url="true">`)
		h.Raw(`</form>`)
		h.Raw(`<table class="table"><thead><tr>`)
		for _, col := range []string{"admin.landing_pages.name", "admin.landing_pages.page_title", "admin.landing_pages.leads", "admin.landing_pages.status", ""} {
			h.Raw(`<th>`)
			if col != "" {
				h.Text(i18n.T(ctx, col))
			}
			h.Raw(`</th>`)
		}
		h.Raw(`</tr></thead>`)
		h.Component(partials.LandingPageRows(ctx, csrfToken, rows))
		h.Raw(`</table>`)
	})
	return components.AdminLayout(ctx, title, csrfToken, user, "landing_pages", body)
}

// LandingPageFormView backs the create and edit form
type LandingPageFormView struct {
	ID        string // empty when creating
	Input     services.LandingPageInput
	Error     string
	PublicURL string
	History   []models.AuditLog
}

func (v LandingPageFormView) action() string {
	if v.ID == "" {
		return "/admin/landing-pages"
	}
	return "/admin/landing-pages/" + v.ID
}

type formInput struct {
	name, label, value, kind, hint string
	required                       bool
	attrs                          [][2]string
}

// slugPreviewAttrs make the name input refresh the slug field as it is typed
var slugPreviewAttrs = [][2]string{
	{"hx-get", "/admin/landing-pages/slug"},
	{"hx-trigger", "input changed delay:300ms"},
	{"hx-target", "#" + SlugFieldID},
	{"hx-swap", "outerHTML"},
	{"hx-include", "#" + SlugFieldID},
}

// AdminLandingPageForm is the tabbed create/edit form
func AdminLandingPageForm(ctx context.Context, csrfToken string, user *models.User, view LandingPageFormView) templ.Component {
	title := i18n.T(ctx, "admin.landing_pages.new")
	if view.ID != "" {
		title = i18n.T(ctx, "admin.landing_pages.edit")
	}
	in := view.Input

	content := []formInput{
		{name: "title", label: "admin.landing_pages.page_title", value: in.Title, required: true},
		{name: "subtitle", label: "admin.landing_pages.subtitle", value: in.Subtitle},
		{name: "description", label: "admin.landing_pages.description", value: in.Description, kind: "textarea"},
		{name: "about_title", label: "admin.landing_pages.about_title", value: in.AboutTitle},
		{name: "about_description", label: "admin.landing_pages.about_description", value: in.AboutDescription, kind: "textarea", hint: "admin.landing_pages.markdown_hint"},
		{name: "button_text", label: "admin.landing_pages.button_text", value: in.ButtonText},
	}
	design := []formInput{
		{name: "color_primary", label: "admin.landing_pages.color_primary", value: in.Colors.Primary},
		{name: "color_secondary", label: "admin.landing_pages.color_secondary", value: in.Colors.Secondary},
		{name: "color_background", label: "admin.landing_pages.color_background", value: in.Colors.Background},
		{name: "color_text", label: "admin.landing_pages.color_text", value: in.Colors.Text},
		{name: "color_button", label: "admin.landing_pages.color_button", value: in.Colors.Button},
	}

	body := components.Render(func(h *HTML) {
		h.Raw(`<div class="page-header"><h1>`).Text(title).Raw(`</h1>`)
		if view.PublicURL != "" {
			h.Raw(`<a target="_blank" rel="noopener"`).Attr("href", view.PublicURL).Raw(`>`).Text(view.PublicURL).Raw(`</a>`)
		}
		h.Raw(`</div>`)
		if view.Error != "" {
			h.Component(components.Alert(components.AlertError, view.Error))
		}

		h.Raw(`<form method="post" enctype="multipart/form-data" class="lp-form" x-data="{ tab: 'content' }"`).Attr("action", view.action()).Raw(`>`)
		h.Component(components.CSRFField(csrfToken))
		h.Raw(`<div class="tabs" role="tablist">`)
		for _, tab := range []string{"content", "banner", "design"} {
			h.Raw(`<button type="button" role="tab"`).
				Attr("@click", "tab = '"+tab+"'").
				Attr(":class", "{ active: tab === '"+tab+"' }").Raw(`>`).
				Text(i18n.T(ctx, "admin.landing_pages.tab_"+tab)).Raw(`</button>`)
		}
		h.Raw(`</div>`)

		h.Raw(`<fieldset x-show="tab === 'content'">`)
		h.Component(formField(ctx, formInput{name: "name", label: "admin.landing_pages.name", value: in.Name, attrs: slugPreviewAttrs}))
		// Published pages keep their slug when renamed
		autoSlug := view.ID == "" && (in.Slug == "" || in.Slug == services.GenerateSlug(in.Name))
		h.Component(SlugField(ctx, in.Slug, autoSlug))
		for _, f := range content {
			h.Component(formField(ctx, f))
		}
		h.Raw(`<label class="checkbox"><input type="checkbox" name="active" value="true"`).AttrIf(in.Active, "checked").Raw(`> `).
			Text(i18n.T(ctx, "admin.landing_pages.active")).Raw(`</label>`)
		h.Raw(`</fieldset>`)

		h.Raw(`<fieldset x-show="tab === 'banner'" x-cloak>`)
		h.Raw(`<div class="field"><label for="banner_type">`).Text(i18n.T(ctx, "admin.landing_pages.banner_type")).Raw(`</label>`)
		h.Raw(`<select id="banner_type" name="banner_type">`)
		for _, bt := range []string{models.BannerTypeImage, models.BannerTypeVideo} {
			h.Raw(`<option`).Attr("value", bt).AttrIf(in.BannerType == bt, "selected").Raw(`>`).
				Text(i18n.T(ctx, "admin.landing_pages.banner_"+bt)).Raw(`</option>`)
		}
		h.Raw(`</select></div>`)
		h.Component(formField(ctx, formInput{name: "banner_url", label: "admin.landing_pages.banner_url", value: in.BannerURL, hint: "admin.landing_pages.banner_url_hint"}))
		h.Raw(`<div class="field"><label for="banner_file">`).Text(i18n.T(ctx, "admin.landing_pages.banner_upload")).Raw(`</label>`)
		h.Raw(`<input type="file" id="banner_file" name="banner_file" accept="image/*,video/*"></div>`)
		if in.BannerURL != "" && in.BannerType == models.BannerTypeImage {
			h.Raw(`<img class="banner-preview"`).Attr("src", in.BannerURL).Raw(` alt="">`)
		}
		h.Raw(`</fieldset>`)

		h.Raw(`<fieldset x-show="tab === 'design'" x-cloak>`)
		for _, f := range design {
			h.Component(formField(ctx, f))
		}
		h.Raw(`</fieldset>`)

		h.Raw(`<div class="form-actions"><a href="/admin/landing-pages" class="btn btn-secondary">`).Text(i18n.T(ctx, "admin.landing_pages.cancel")).Raw(`</a>`)
		h.Raw(`<button type="submit" class="btn btn-primary">`).Text(i18n.T(ctx, "admin.landing_pages.save")).Raw(`</button></div>`)
		h.Raw(`</form>`)

		if len(view.History) > 0 {
			h.Component(auditHistory(ctx, view.History))
		}
	})
	return components.AdminLayout(ctx, title, csrfToken, user, "landing_pages", body)
}

func formField(ctx context.Context, f formInput) templ.Component {
	id := "f-" + f.name
	return components.Render(func(h *HTML) {
		h.Raw(`<div class="field"><label`).Attr("for", id).Raw(`>`).Text(i18n.T(ctx, f.label)).Raw(`</label>`)
		if f.kind == "textarea" {
			h.Raw(`<textarea rows="6"`).Attr("id", id).Attr("name", f.name).AttrIf(f.required, "required").Raw(`>`).Text(f.value).Raw(`</textarea>`)
		} else {
			h.Raw(`<input type="text"`).Attr("id", id).Attr("name", f.name).Attr("value", f.value).AttrIf(f.required, "required")
			for _, a := range f.attrs {
				h.Attr(a[0], a[1])
			}
			h.Raw(`>`)
		}
		if f.hint != "" {
			h.Raw(`<small class="hint">`).Text(i18n.T(ctx, f.hint)).Raw(`</small>`)
		}
		h.Raw(`</div>`)
	})
}

// SlugFieldID wraps the slug input swapped by the name preview
const SlugFieldID = "slug-field"

// SlugField is the slug input. While auto holds it follows the name;
// typing in it turns auto off so a hand-edited slug is kept.
func SlugField(ctx context.Context, slug string, auto bool) templ.Component {
	return components.Render(func(h *HTML) {
		h.Raw(`<div class="field"`).Attr("id", SlugFieldID).Raw(`><label for="f-slug">`).Text(i18n.T(ctx, "admin.landing_pages.slug")).Raw(`</label>`)
		h.Raw(`<input type="text" id="f-slug" name="slug"`).Attr("value", slug).Attr("@input", "$el.form.elements.slug_auto.value = 'false'").Raw(`>`)
		h.Raw(`<input type="hidden" name="slug_auto"`).Attr("value", strconv.FormatBool(auto)).Raw(`>`)
		h.Raw(`<small class="hint">`).Text(i18n.T(ctx, "admin.landing_pages.slug_hint")).Raw(`</small></div>`)
	})
}

func auditHistory(ctx context.Context, logs []models.AuditLog) templ.Component {
	return components.Render(func(h *HTML) {
		h.Raw(`<section class="history"><h2>`).Text(i18n.T(ctx, "admin.landing_pages.history")).Raw(`</h2><ul>`)
		for _, entry := range logs {
			h.Raw(`<li><time`).Attr("datetime", entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00")).Raw(`>`).
				Text(services.FormatDateBR(entry.CreatedAt)).Raw(`</time> `)
			h.Raw(`<strong>`).Text(string(entry.Action)).Raw(`</strong> `).Text(entry.UserName)
			for _, change := range entry.Changes() {
				h.Raw(`<div class="change"><code>`).Text(change.Field).Raw(`</code>: `).Text(fmt.Sprint(change.Old)).Raw(` → `).Text(fmt.Sprint(change.New)).Raw(`</div>`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ul></section>`)
	})
}
