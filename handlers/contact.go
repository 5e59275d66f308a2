package handlers

import (
	"net/http"

	"metanoia_app_go/db"
	"metanoia_app_go/middleware"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"
	"metanoia_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// HomeHandler renders the site root
func HomeHandler(c echo.Context) error {
	return render(c, pages.Home(c.Request().Context(), middleware.GetCSRFToken(c), getConfig(c).TurnstileSiteKey))
}

// ContactPostHandler stores a public contact message and notifies the team
func ContactPostHandler(c echo.Context) error {
	ctx := c.Request().Context()
	cfg := getConfig(c)

	fail := func(err error) error {
		if !isHTMX(c) {
			return err
		}
		status, msg := errorResponse(err)
		logError(c, status, err)
		return renderStatus(c, status, pages.ContactForm(ctx, middleware.GetCSRFToken(c), cfg.TurnstileSiteKey, msg))
	}

	if cfg.TurnstileSecretKey != "" {
		if err := verifyCaptcha(c, cfg); err != nil {
			return fail(err)
		}
	}

	msg, err := services.CreateContactMessage(ctx, db.DB, services.ContactInput{
		Name:      c.FormValue("name"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		Subject:   c.FormValue("subject"),
		Message:   c.FormValue("message"),
		IPAddress: c.RealIP(),
	})
	if err != nil {
		return fail(err)
	}

	if cfg.LeadNotifyEmail != "" {
		services.SendEmailAsync(cfg, services.BuildContactEmail(cfg.LeadNotifyEmail, msg))
	}

	if isHTMX(c) {
		return render(c, components.Alert(components.AlertSuccess, i18n.T(ctx, "contact.sent")))
	}
	return c.Redirect(http.StatusSeeOther, "/?contato=enviado")
}
