package services

import (
	"net/url"
	"strings"

	"metanoia_app_go/models"
)

// PublicURL is the absolute address visitors use to open a landing page
func PublicURL(appURL string, page *models.LandingPage) string {
	return strings.TrimSuffix(appURL, "/") + page.PublicPath()
}

// QRCodeURL returns the chart service address that renders link as a QR code image
func QRCodeURL(serviceURL, link string) string {
	return serviceURL + url.QueryEscape(link)
}
