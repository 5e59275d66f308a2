package pages

import (
	"context"

	"metanoia_app_go/models"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"

	"github.com/a-h/templ"
)

// Login renders the admin sign-in form
func Login(ctx context.Context, csrfToken, email, errMsg string) templ.Component {
	seo := models.DefaultSEO(i18n.T(ctx, "auth.login")+" | "+i18n.T(ctx, "site.name"), "").WithNoIndex()
	body := components.Render(func(h *HTML) {
		h.Raw(`<main class="login"><h1>`).Text(i18n.T(ctx, "site.name")).Raw(`</h1>`)
		h.Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#login-error" hx-swap="innerHTML">`)
		h.Component(components.CSRFField(csrfToken))
		h.Raw(`<div id="login-error">`)
		if errMsg != "" {
			h.Component(components.Alert(components.AlertError, errMsg))
		}
		h.Raw(`</div>`)
		h.Raw(`<div class="field"><label for="email">`).Text(i18n.T(ctx, "auth.email")).Raw(`</label>`)
		h.Raw(`<input id="email" name="email" type="email" autocomplete="username" required`).Attr("value", email).Raw(`></div>`)
		h.Raw(`<div class="field"><label for="password">`).Text(i18n.T(ctx, "auth.password")).Raw(`</label>`)
		h.Raw(`<input id="password" name="password" type="password" autocomplete="current-password" required></div>`)
		h.Raw(`<button type="submit" class="btn btn-primary">`).Text(i18n.T(ctx, "auth.login")).Raw(`</button>`)
		h.Raw(`</form></main>`)
	})
	return components.PublicLayout(ctx, seo, body)
}
