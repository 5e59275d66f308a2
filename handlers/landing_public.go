package handlers

import (
	"net/http"

	"metanoia_app_go/config"
	"metanoia_app_go/db"
	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"
	"metanoia_app_go/templates/pages"
	"metanoia_app_go/templates/partials"

	"github.com/labstack/echo/v4"
	zlog "github.com/rs/zerolog/log"
)

// resolvePublicPage loads an active page by slug. Unknown and inactive slugs
// both render the not-found page.
func resolvePublicPage(c echo.Context) (*models.LandingPage, error) {
	page, err := services.NewLandingPageStore(db.DB).ResolveBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if services.KindOf(err) != services.KindNotFound {
			zlog.Error().Err(err).Str("slug", c.Param("slug")).Msg("Failed to resolve landing page")
		}
		return nil, err
	}
	return page, nil
}

func landingPageView(c echo.Context, page *models.LandingPage) pages.LandingPageView {
	cfg := getConfig(c)
	return pages.LandingPageView{
		Page:      page,
		SEO:       models.LandingPageSEO(page, services.PublicURL(cfg.AppURL, page)),
		Video:     services.ParseVideoBanner(page.BannerURL),
		AboutHTML: services.RenderMarkdown(page.AboutDescription),
		Form:      emptyLeadForm(c, cfg, page),
	}
}

func emptyLeadForm(c echo.Context, cfg *config.Config, page *models.LandingPage) partials.LeadFormState {
	return partials.LeadFormState{
		Page:             page,
		CSRFToken:        middleware.GetCSRFToken(c),
		TurnstileSiteKey: cfg.TurnstileSiteKey,
	}
}

// PublicLandingPageHandler renders GET /lp/:slug
func PublicLandingPageHandler(c echo.Context) error {
	page, err := resolvePublicPage(c)
	if err != nil {
		if services.KindOf(err) == services.KindNotFound {
			return renderStatus(c, http.StatusNotFound, pages.NotFound(c.Request().Context()))
		}
		return err
	}

	services.LandingPageViews.WithLabelValues(page.Slug).Inc()
	return render(c, pages.LandingPage(c.Request().Context(), landingPageView(c, page)))
}

// PublicLeadFormHandler returns a blank form fragment ("Nova inscrição")
func PublicLeadFormHandler(c echo.Context) error {
	page, err := resolvePublicPage(c)
	if err != nil {
		return err
	}
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, page.PublicPath())
	}
	return render(c, partials.LeadForm(c.Request().Context(), emptyLeadForm(c, getConfig(c), page)))
}

// PublicLeadSubmitHandler handles POST /lp/:slug/leads.
// Failures re-render the form with the submitted values and an alert.
func PublicLeadSubmitHandler(c echo.Context) error {
	ctx := c.Request().Context()
	cfg := getConfig(c)

	// Re-resolved on every submit so a page deactivated meanwhile stops accepting leads
	page, err := resolvePublicPage(c)
	if err != nil {
		return err
	}

	input := leadInputFromForm(c)
	formState := emptyLeadForm(c, cfg, page)
	formState.Values = input

	if cfg.TurnstileSecretKey != "" {
		if err := verifyCaptcha(c, cfg); err != nil {
			return leadFormError(c, page, formState, err)
		}
	}

	lead, err := services.CreateLead(ctx, db.DB, page, input)
	if err != nil {
		return leadFormError(c, page, formState, err)
	}

	if cfg.LeadNotifyEmail != "" {
		services.SendEmailAsync(cfg, services.BuildNewLeadEmail(cfg.LeadNotifyEmail, cfg.AppURL, page, lead))
	}

	if isHTMX(c) {
		return render(c, partials.LeadConfirmation(ctx, page, lead))
	}
	view := landingPageView(c, page)
	view.Submitted = lead
	return render(c, pages.LandingPage(ctx, view))
}

func leadFormError(c echo.Context, page *models.LandingPage, state partials.LeadFormState, err error) error {
	status, msg := errorResponse(err)
	logError(c, status, err)
	state.Error = msg

	if isHTMX(c) {
		return renderStatus(c, status, partials.LeadForm(c.Request().Context(), state))
	}
	view := landingPageView(c, page)
	view.Form = state
	return renderStatus(c, status, pages.LandingPage(c.Request().Context(), view))
}

func leadInputFromForm(c echo.Context) services.LeadInput {
	return services.LeadInput{
		Name:      c.FormValue("name"),
		WhatsApp:  c.FormValue("whatsapp"),
		Email:     c.FormValue("email"),
		Age:       c.FormValue("age"),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// leadSubmitRoute must match the route registered for PublicLeadSubmitHandler
const leadSubmitRoute = "/lp/:slug/leads"

func isLeadSubmit(c echo.Context) bool {
	return isHTMX(c) && c.Request().Method == http.MethodPost && c.Path() == leadSubmitRoute
}

// rejectedLeadSubmit answers a lead post stopped before its handler ran
// (rate limit, CSRF) with the form and the visitor's values, so the swap
// into #lead-form does not lose them.
func rejectedLeadSubmit(c echo.Context, err error, status int, msg string) error {
	ctx := c.Request().Context()
	page, resolveErr := resolvePublicPage(c)
	if resolveErr != nil {
		return renderStatus(c, status, components.Alert(components.AlertError, msg))
	}
	if he, ok := err.(*echo.HTTPError); ok && (he.Code == http.StatusForbidden || he.Code == http.StatusBadRequest) {
		msg = i18n.T(ctx, "lead.session_expired")
	}

	state := emptyLeadForm(c, getConfig(c), page)
	state.Values = leadInputFromForm(c)
	state.Error = msg
	return renderStatus(c, status, partials.LeadForm(ctx, state))
}

// verifyCaptcha checks the Turnstile token posted with a public form
func verifyCaptcha(c echo.Context, cfg *config.Config) error {
	token := c.FormValue("cf-turnstile-response")
	if token == "" {
		return services.NewValidationError("Complete a verificação de segurança")
	}
	ok, err := services.VerifyTurnstileTokenContext(c.Request().Context(), token, cfg.TurnstileSecretKey, c.RealIP())
	if err != nil || !ok {
		zlog.Warn().Err(err).Str("ip", c.RealIP()).Msg("Turnstile verification failed")
		return services.NewValidationError("Falha na verificação de segurança. Tente novamente.")
	}
	return nil
}
