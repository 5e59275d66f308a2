package pages

import (
	"context"
	"strconv"

	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"
	"metanoia_app_go/templates/partials"

	"github.com/a-h/templ"
)

type HTML = components.HTML

// LandingPageView is everything the public page needs
type LandingPageView struct {
	Page      *models.LandingPage
	SEO       *models.SEO
	Video     services.VideoEmbed
	AboutHTML string
	Form      partials.LeadFormState
	// Submitted replaces the form with the confirmation (non-HTMX POST)
	Submitted *models.Lead
}

// LandingPage renders hero, banner, about section and the lead form
func LandingPage(ctx context.Context, view LandingPageView) templ.Component {
	page := view.Page
	body := components.Render(func(h *HTML) {
		h.Raw(`<div class="landing-page"`)
		if style := partials.ColorStyle(page.Colors); style != "" {
			h.Attr("style", style)
		}
		h.Raw(`>`)

		h.Raw(`<header class="hero"><div class="hero-text">`)
		h.Raw(`<h1>`).Text(page.Title).Raw(`</h1>`)
		if page.Subtitle != "" {
			h.Raw(`<p class="subtitle">`).Text(page.Subtitle).Raw(`</p>`)
		}
		if page.Description != "" {
			h.Raw(`<p class="description">`).Text(page.Description).Raw(`</p>`)
		}
		h.Raw(`<a href="#inscricao" class="btn btn-primary">`).Text(buttonText(ctx, page)).Raw(`</a>`)
		h.Raw(`</div>`)
		h.Component(banner(page, view.Video))
		h.Raw(`</header>`)

		if page.AboutTitle != "" || view.AboutHTML != "" {
			h.Raw(`<section class="about">`)
			if page.AboutTitle != "" {
				h.Raw(`<h2>`).Text(page.AboutTitle).Raw(`</h2>`)
			}
			// sanitized by services.RenderMarkdown
			h.Raw(`<div class="prose">`).Raw(view.AboutHTML).Raw(`</div></section>`)
		}

		h.Raw(`<section id="inscricao" class="signup"><h2>`).Text(i18n.T(ctx, "lead.title")).Raw(`</h2>`)
		if view.Submitted != nil {
			h.Component(partials.LeadConfirmation(ctx, page, view.Submitted))
		} else {
			h.Component(partials.LeadForm(ctx, view.Form))
		}
		h.Raw(`</section>`)

		if view.Form.TurnstileSiteKey != "" {
			h.Raw(`<script src="https://challenges.cloudflare.com/turnstile/v0/api.js" async defer`).
				Attr("nonce", middleware.GetNonce(ctx)).Raw(`></script>`)
		}
		h.Raw(`</div>`)
	})
	return components.PublicLayout(ctx, view.SEO, body)
}

func buttonText(ctx context.Context, page *models.LandingPage) string {
	if page.ButtonText != "" {
		return page.ButtonText
	}
	return i18n.T(ctx, "lead.submit")
}

// banner picks <img>, an embedded player or a plain <video> by banner type
func banner(page *models.LandingPage, video services.VideoEmbed) templ.Component {
	return components.Render(func(h *HTML) {
		if page.BannerURL == "" {
			return
		}
		h.Raw(`<div class="banner">`)
		switch {
		case page.BannerType != models.BannerTypeVideo:
			h.Raw(`<img`).Attr("src", page.BannerURL).Attr("alt", page.Title).Raw(` loading="eager">`)
		case video.IsIframe():
			h.Raw(`<iframe`).Attr("src", video.EmbedURL).Attr("title", page.Title).
				Raw(` allow="autoplay; encrypted-media; picture-in-picture; fullscreen" allowfullscreen loading="lazy"></iframe>`)
		default:
			h.Raw(`<video controls playsinline preload="metadata"`).Attr("src", video.EmbedURL).Raw(`></video>`)
		}
		h.Raw(`</div>`)
	})
}

// NotFound is the static page shown for unknown or inactive slugs
func NotFound(ctx context.Context) templ.Component {
	seo := models.DefaultSEO(i18n.T(ctx, "notfound.title"), "").WithNoIndex()
	body := components.Render(func(h *HTML) {
		h.Raw(`<main class="not-found"><h1>`).Text(i18n.T(ctx, "notfound.title")).Raw(`</h1>`)
		h.Raw(`<p>`).Text(i18n.T(ctx, "notfound.body")).Raw(`</p>`)
		h.Raw(`<a href="/" class="btn btn-secondary">`).Text(i18n.T(ctx, "site.home")).Raw(`</a></main>`)
	})
	return components.PublicLayout(ctx, seo, body)
}

// ErrorPage is the full-page rendering of an error outside HTMX
func ErrorPage(ctx context.Context, status int, message string) templ.Component {
	seo := models.DefaultSEO(strconv.Itoa(status)+" | "+i18n.T(ctx, "site.name"), "").WithNoIndex()
	body := components.Render(func(h *HTML) {
		h.Raw(`<main class="error-page"><h1>`).Text(strconv.Itoa(status)).Raw(`</h1>`)
		h.Component(components.Alert(components.AlertError, message))
		h.Raw(`<a href="/" class="btn btn-secondary">`).Text(i18n.T(ctx, "site.home")).Raw(`</a></main>`)
	})
	return components.PublicLayout(ctx, seo, body)
}
