package partials

import (
	"context"

	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"

	"github.com/a-h/templ"
)

// LeadFormID is the swap target shared by the form and its confirmation
const LeadFormID = "lead-form"

// LeadFormState is the form as rendered: idle (zero Values, no Error) or
// re-rendered after a failed submission with the last values kept.
type LeadFormState struct {
	Page             *models.LandingPage
	Values           services.LeadInput
	Error            string
	CSRFToken        string
	TurnstileSiteKey string
}

type leadField struct {
	name, label, kind, value, autocomplete string
	extra                                  string
}

// LeadForm renders the capture form scoped to one landing page
func LeadForm(ctx context.Context, state LeadFormState) templ.Component {
	action := state.Page.PublicPath() + "/leads"
	button := state.Page.ButtonText
	if button == "" {
		button = i18n.T(ctx, "lead.submit")
	}
	fields := []leadField{
		{name: "name", label: "lead.name", kind: "text", value: state.Values.Name, autocomplete: "name", extra: ` maxlength="120"`},
		{name: "whatsapp", label: "lead.whatsapp", kind: "tel", value: state.Values.WhatsApp, autocomplete: "tel", extra: ` maxlength="30"`},
		{name: "email", label: "lead.email", kind: "email", value: state.Values.Email, autocomplete: "email", extra: ` maxlength="200"`},
		{name: "age", label: "lead.age", kind: "number", value: state.Values.Age, extra: ` min="0" max="130" inputmode="numeric"`},
	}

	return components.Render(func(h *HTML) {
		h.Raw(`<form`).Attr("id", LeadFormID).Raw(` class="lead-form" method="post"`).Attr("action", action).
			Attr("hx-post", action).Raw(` hx-target="this" hx-swap="outerHTML" hx-disabled-elt="find button[type=submit]" hx-indicator="find .submitting">`)
		h.Component(components.CSRFField(state.CSRFToken))
		h.Raw(`<input type="hidden" name="landing_page_id"`).Attr("value", state.Page.ID).Raw(`>`)
		if state.Error != "" {
			h.Component(components.Alert(components.AlertError, state.Error))
		}
		for _, f := range fields {
			id := "lead-" + f.name
			h.Raw(`<div class="field"><label`).Attr("for", id).Raw(`>`).Text(i18n.T(ctx, f.label)).Raw(`</label>`)
			h.Raw(`<input required`).Attr("id", id).Attr("name", f.name).Attr("type", f.kind).Attr("value", f.value)
			if f.autocomplete != "" {
				h.Attr("autocomplete", f.autocomplete)
			}
			h.Raw(f.extra).Raw(`></div>`)
		}
		if state.TurnstileSiteKey != "" {
			h.Raw(`<div class="cf-turnstile"`).Attr("data-sitekey", state.TurnstileSiteKey).Raw(`></div>`)
		}
		h.Raw(`<button type="submit" class="btn btn-primary"><span class="idle">`).Text(button).Raw(`</span>`)
		h.Raw(`<span class="submitting htmx-indicator">`).Text(i18n.T(ctx, "lead.submitting")).Raw(`</span></button>`)
		h.Raw(`</form>`)
	})
}

// LeadConfirmation replaces the form after a successful submission
func LeadConfirmation(ctx context.Context, page *models.LandingPage, lead *models.Lead) templ.Component {
	formURL := page.PublicPath() + "/form"
	rows := []struct{ label, value string }{
		{"lead.name", lead.Name},
		{"lead.whatsapp", lead.WhatsApp},
		{"lead.email", lead.Email},
		{"lead.age", itoa(int64(lead.Age))},
	}
	return components.Render(func(h *HTML) {
		h.Raw(`<div`).Attr("id", LeadFormID).Raw(` class="lead-confirmation" role="status">`)
		h.Raw(`<h3>`).Text(i18n.T(ctx, "lead.success_title")).Raw(`</h3>`)
		h.Raw(`<p>`).Text(i18n.T(ctx, "lead.success_body")).Raw(`</p>`)
		h.Raw(`<h4>`).Text(i18n.T(ctx, "lead.sent_data")).Raw(`</h4><dl>`)
		for _, r := range rows {
			h.Raw(`<dt>`).Text(i18n.T(ctx, r.label)).Raw(`</dt><dd>`).Text(r.value).Raw(`</dd>`)
		}
		h.Raw(`</dl>`)
		h.Raw(`<a class="btn btn-secondary"`).Attr("href", page.PublicPath()).
			Attr("hx-get", formURL).Raw(` hx-target="closest .lead-confirmation" hx-swap="outerHTML">`).
			Text(i18n.T(ctx, "lead.new")).Raw(`</a>`)
		h.Raw(`</div>`)
	})
}

// HTML is the component writer, aliased for brevity
type HTML = components.HTML
