package pages

import (
	"context"

	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"

	"github.com/a-h/templ"
)

// Home is the site root with the public contact form
func Home(ctx context.Context, csrfToken, turnstileSiteKey string) templ.Component {
	seo := models.DefaultSEO(i18n.T(ctx, "site.name"), i18n.T(ctx, "home.tagline"))
	body := components.Render(func(h *HTML) {
		h.Raw(`<main class="home"><h1>`).Text(i18n.T(ctx, "site.name")).Raw(`</h1>`)
		h.Raw(`<p class="tagline">`).Text(i18n.T(ctx, "home.tagline")).Raw(`</p>`)
		h.Raw(`<section class="contact"><h2>`).Text(i18n.T(ctx, "contact.title")).Raw(`</h2>`)
		h.Component(ContactForm(ctx, csrfToken, turnstileSiteKey, ""))
		h.Raw(`</section></main>`)
		if turnstileSiteKey != "" {
			h.Raw(`<script src="https://challenges.cloudflare.com/turnstile/v0/api.js" async defer`).
				Attr("nonce", middleware.GetNonce(ctx)).Raw(`></script>`)
		}
	})
	return components.PublicLayout(ctx, seo, body)
}

// ContactForm posts to /contato; success replaces it with a confirmation alert
func ContactForm(ctx context.Context, csrfToken, turnstileSiteKey, errMsg string) templ.Component {
	return components.Render(func(h *HTML) {
		h.Raw(`<form id="contact-form" method="post" action="/contato" hx-post="/contato" hx-target="this" hx-swap="outerHTML">`)
		h.Component(components.CSRFField(csrfToken))
		if errMsg != "" {
			h.Component(components.Alert(components.AlertError, errMsg))
		}
		for _, f := range []struct{ name, label, kind string }{
			{"name", "contact.name", "text"},
			{"email", "contact.email", "email"},
			{"phone", "contact.phone", "tel"},
			{"subject", "contact.subject", "text"},
		} {
			h.Raw(`<div class="field"><label`).Attr("for", "contact-"+f.name).Raw(`>`).Text(i18n.T(ctx, f.label)).Raw(`</label>`)
			h.Raw(`<input`).Attr("id", "contact-"+f.name).Attr("name", f.name).Attr("type", f.kind).
				AttrIf(f.name == "name" || f.name == "email", "required").Raw(`></div>`)
		}
		h.Raw(`<div class="field"><label for="contact-message">`).Text(i18n.T(ctx, "contact.message")).Raw(`</label>`)
		h.Raw(`<textarea id="contact-message" name="message" rows="5" maxlength="5000" required></textarea></div>`)
		if turnstileSiteKey != "" {
			h.Raw(`<div class="cf-turnstile"`).Attr("data-sitekey", turnstileSiteKey).Raw(`></div>`)
		}
		h.Raw(`<button type="submit" class="btn btn-primary">`).Text(i18n.T(ctx, "contact.submit")).Raw(`</button></form>`)
	})
}
