package handlers

import (
	"encoding/xml"
	"net/http"
	"time"

	"metanoia_app_go/services"

	"github.com/labstack/echo/v4"
	zlog "github.com/rs/zerolog/log"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapHandler lists the home page and every active landing page
func SitemapHandler(c echo.Context) error {
	baseURL := getConfig(c).AppURL
	urls := []SitemapURL{
		{Loc: baseURL + "/", ChangeFreq: "weekly", Priority: 1.0},
	}

	list, err := landingPageStore().List(c.Request().Context())
	if err != nil {
		// Keep serving the static entries
		zlog.Error().Err(err).Msg("Failed to load landing pages for sitemap")
	}
	for i := range list {
		if !list[i].Active {
			continue
		}
		urls = append(urls, SitemapURL{
			Loc:        services.PublicURL(baseURL, &list[i]),
			LastMod:    list[i].UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   0.9,
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	encoder := xml.NewEncoder(c.Response())
	encoder.Indent("", "  ")
	return encoder.Encode(SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

// RobotsHandler keeps crawlers out of the console and points them at the sitemap
func RobotsHandler(c echo.Context) error {
	body := "User-agent: *\nDisallow: /admin\nDisallow: /login\nAllow: /\n\nSitemap: " + getConfig(c).AppURL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}
