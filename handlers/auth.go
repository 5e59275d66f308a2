package handlers

import (
	"net/http"

	"metanoia_app_go/db"
	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/components"
	"metanoia_app_go/templates/pages"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

// LoginHandler renders the login page, or sends a signed-in admin to the console
func LoginHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := services.ValidateSession(db.DB, cookie.Value); err == nil {
			return c.Redirect(http.StatusSeeOther, "/admin")
		}
	}
	return render(c, pages.Login(c.Request().Context(), middleware.GetCSRFToken(c), "", ""))
}

// LoginPostHandler handles the login form submission
func LoginPostHandler(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.FormValue("email")

	user, err := services.Authenticate(db.DB, email, c.FormValue("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			zlog.Error().Err(err).Msg("Login failed")
		} else if services.Monitor != nil {
			services.Monitor.TrackFailedLogin(c.RealIP())
		}
		msg := i18n.T(ctx, "auth.invalid")
		if isHTMX(c) {
			return renderStatus(c, http.StatusUnauthorized, components.Alert(components.AlertError, msg))
		}
		return renderStatus(c, http.StatusUnauthorized, pages.Login(ctx, middleware.GetCSRFToken(c), email, msg))
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return services.Internal(err, "iniciar sessão")
	}
	middleware.SetSessionCookie(c, session.Token)

	services.LogAuditEvent(db.DB, services.AuditContext{
		UserID:    user.ID,
		UserName:  user.Name,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}, services.AuditEvent{
		Action:       models.AuditActionLogin,
		ResourceType: "User",
		ResourceID:   user.ID,
		ResourceName: user.Name,
		Description:  "Login no painel",
	})

	return redirect(c, "/admin")
}

// LogoutHandler ends the current session
func LogoutHandler(c echo.Context) error {
	if user := middleware.GetCurrentUser(c); user != nil {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
			Action:       models.AuditActionLogout,
			ResourceType: "User",
			ResourceID:   user.ID,
			ResourceName: user.Name,
			Description:  "Logout do painel",
		})
	}

	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			zlog.Warn().Err(err).Msg("Failed to delete session")
		}
	}
	middleware.ClearSessionCookie(c)

	return redirect(c, "/login")
}

// redirect sends HTMX requests a client-side redirect and everything else a 303
func redirect(c echo.Context, to string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", to)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, to)
}
