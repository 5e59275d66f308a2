package components

import (
	"context"

	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services/i18n"

	"github.com/a-h/templ"
)

// htmxConfig lets error responses swap so alerts rendered with 4xx/5xx reach the page
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// Head renders the document head with share metadata
func Head(ctx context.Context, seo *models.SEO) templ.Component {
	if seo == nil {
		seo = models.DefaultSEO(i18n.T(ctx, "site.name"), "")
	}
	nonce := middleware.GetNonce(ctx)
	return Render(func(h *HTML) {
		h.Raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>`).Text(seo.Title).Raw(`</title>`)
		if seo.Description != "" {
			h.Raw(`<meta name="description"`).Attr("content", seo.Description).Raw(`>`)
		}
		if seo.NoIndex {
			h.Raw(`<meta name="robots" content="noindex, nofollow">`)
		}
		if seo.Canonical != "" {
			h.Raw(`<link rel="canonical"`).Attr("href", seo.Canonical).Raw(`>`)
			h.Raw(`<meta property="og:url"`).Attr("content", seo.Canonical).Raw(`>`)
		}
		h.Raw(`<meta property="og:title"`).Attr("content", seo.Title).Raw(`>`)
		h.Raw(`<meta property="og:type"`).Attr("content", seo.OGType).Raw(`>`)
		h.Raw(`<meta property="og:locale"`).Attr("content", seo.Locale).Raw(`>`)
		if seo.Description != "" {
			h.Raw(`<meta property="og:description"`).Attr("content", seo.Description).Raw(`>`)
		}
		if seo.OGImage != "" {
			h.Raw(`<meta property="og:image"`).Attr("content", seo.OGImage).Raw(`>`)
		}
		h.Raw(`<meta name="htmx-config"`).Attr("content", htmxConfig).Raw(`>`)
		h.Raw(`<link rel="icon"`).Attr("href", middleware.AssetURL(ctx, "images/favicon.svg")).Raw(` type="image/svg+xml">`)
		h.Raw(`<link rel="stylesheet"`).Attr("href", middleware.AssetURL(ctx, "css/style.css")).Raw(`>`)
		h.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer`).Attr("nonce", nonce).Raw(`></script>`)
		h.Raw(`<script src="https://unpkg.com/alpinejs@3.14.8/dist/cdn.min.js" defer`).Attr("nonce", nonce).Raw(`></script>`)
		h.Raw(`<script defer`).Attr("src", middleware.AssetURL(ctx, "js/app.js")).Attr("nonce", nonce).Raw(`></script>`)
		h.Raw(`</head>`)
	})
}

// PublicLayout wraps public pages
func PublicLayout(ctx context.Context, seo *models.SEO, body templ.Component) templ.Component {
	return Render(func(h *HTML) {
		h.Raw(`<!DOCTYPE html><html`).Attr("lang", htmlLang(ctx)).Raw(`>`)
		h.Component(Head(ctx, seo))
		h.Raw(`<body class="public">`).Component(body).Raw(`</body></html>`)
	})
}

// AdminNav entries, keyed by the section they highlight
var adminNav = []struct {
	Section string
	Href    string
	Label   string
}{
	{"dashboard", "/admin", "admin.nav.dashboard"},
	{"landing_pages", "/admin/landing-pages", "admin.nav.landing_pages"},
	{"leads", "/admin/leads", "admin.nav.leads"},
}

// AdminLayout wraps the console pages with the navigation bar.
// The CSRF token is also exposed to HTMX through hx-headers.
func AdminLayout(ctx context.Context, title, csrfToken string, user *models.User, section string, body templ.Component) templ.Component {
	seo := models.DefaultSEO(title+" | "+i18n.T(ctx, "site.name"), "").WithNoIndex()
	return Render(func(h *HTML) {
		h.Raw(`<!DOCTYPE html><html`).Attr("lang", htmlLang(ctx)).Raw(`>`)
		h.Component(Head(ctx, seo))
		h.Raw(`<body class="admin"`).Attr("hx-headers", JSON(map[string]string{"X-CSRF-Token": csrfToken})).Raw(`>`)
		h.Raw(`<nav class="admin-nav"><a class="brand" href="/admin">`).Text(i18n.T(ctx, "site.name")).Raw(`</a><ul>`)
		for _, item := range adminNav {
			h.Raw(`<li><a`).Attr("href", item.Href)
			if item.Section == section {
				h.Raw(` class="active" aria-current="page"`)
			}
			h.Raw(`>`).Text(i18n.T(ctx, item.Label)).Raw(`</a></li>`)
		}
		h.Raw(`</ul>`)
		if user != nil {
			h.Raw(`<form method="post" action="/logout" class="logout">`).Component(CSRFField(csrfToken))
			h.Raw(`<span class="user">`).Text(user.Name).Raw(`</span>`)
			h.Raw(`<button type="submit">`).Text(i18n.T(ctx, "admin.nav.logout")).Raw(`</button></form>`)
		}
		h.Raw(`</nav><main class="admin-main"><div id="flash"></div>`).Component(body).Raw(`</main></body></html>`)
	})
}

func htmlLang(ctx context.Context) string {
	if i18n.GetLocale(ctx) == "pt" {
		return "pt-BR"
	}
	return i18n.GetLocale(ctx)
}
