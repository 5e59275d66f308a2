package middleware

import (
	"context"
	"net/http"
	"time"

	"metanoia_app_go/config"
	"metanoia_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// LangCookieName persists the chosen language
const LangCookieName = "lang"

var langMatcher = language.NewMatcher([]language.Tag{
	language.BrazilianPortuguese, // first entry is the fallback
	language.English,
})

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("pt")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = i18n.Default()
				}
				c.SetCookie(languageCookie(lang, cfg != nil && cfg.IsProduction()))
			} else if cookie, err := c.Cookie(LangCookieName); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = matchAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)

			// Request context for templ
			ctx := context.WithValue(c.Request().Context(), i18n.LocaleContextKey, lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// matchAcceptLanguage picks the best supported language for an Accept-Language header
func matchAcceptLanguage(header string) string {
	if header == "" {
		return i18n.Default()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return i18n.Default()
	}
	tag, _, _ := langMatcher.Match(tags...)
	base, _ := tag.Base()
	if i18n.IsSupported(base.String()) {
		return base.String()
	}
	return i18n.Default()
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, lang string) {
	c.SetCookie(languageCookie(lang, isProduction(c)))
}

func languageCookie(lang string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     LangCookieName,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.Default()
}
