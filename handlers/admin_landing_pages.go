package handlers

import (
	"context"
	"net/http"
	"strings"

	"metanoia_app_go/config"
	"metanoia_app_go/db"
	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"
	"metanoia_app_go/templates/pages"
	"metanoia_app_go/templates/partials"

	"github.com/labstack/echo/v4"
	zlog "github.com/rs/zerolog/log"
)

const auditResourceLandingPage = "LandingPage"

// flashSaved and flashDeleted are passed through the PRG redirect
const (
	flashSaved   = "saved"
	flashDeleted = "deleted"
)

func landingPageStore() *services.LandingPageStore {
	return services.NewLandingPageStore(db.DB)
}

// LandingPagesHandler lists pages with their lead counts. HTMX search
// requests get only the table body.
func LandingPagesHandler(c echo.Context) error {
	ctx := c.Request().Context()
	query := strings.TrimSpace(c.QueryParam("q"))

	list, err := landingPageStore().Search(ctx, query)
	if err != nil {
		return err
	}
	counts, err := services.CountLeadsByLandingPage(ctx, db.DB)
	if err != nil {
		return err
	}

	appURL := getConfig(c).AppURL
	rows := make([]partials.LandingPageRow, len(list))
	for i := range list {
		rows[i] = partials.LandingPageRow{
			Page:      list[i],
			Leads:     counts[list[i].ID],
			PublicURL: services.PublicURL(appURL, &list[i]),
		}
	}

	csrfToken := middleware.GetCSRFToken(c)
	if isHTMX(c) && c.Request().Header.Get("HX-Target") == partials.LandingPageRowsID {
		return render(c, partials.LandingPageRows(ctx, csrfToken, rows))
	}

	var flash string
	switch c.QueryParam("flash") {
	case flashSaved:
		flash = i18n.T(ctx, "admin.landing_pages.saved")
	case flashDeleted:
		flash = i18n.T(ctx, "admin.landing_pages.deleted")
	}
	return render(c, pages.AdminLandingPages(ctx, csrfToken, middleware.GetCurrentUser(c), rows, query, flash))
}

// NewLandingPageHandler renders an empty form
func NewLandingPageHandler(c echo.Context) error {
	view := pages.LandingPageFormView{
		Input: services.LandingPageInput{BannerType: models.BannerTypeImage, Active: true},
	}
	return renderLandingPageForm(c, http.StatusOK, view)
}

// SlugPreviewHandler re-renders the slug field while the name is typed.
// A slug edited by hand comes back unchanged.
func SlugPreviewHandler(c echo.Context) error {
	slug := c.QueryParam("slug")
	auto := c.QueryParam("slug_auto") == "true"
	if auto {
		slug = services.GenerateSlug(c.QueryParam("name"))
	}
	return render(c, pages.SlugField(c.Request().Context(), slug, auto))
}

// EditLandingPageHandler renders the form for an existing page with its change history
func EditLandingPageHandler(c echo.Context) error {
	page, err := landingPageStore().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return renderLandingPageForm(c, http.StatusOK, editFormView(c, page, services.InputFromLandingPage(page)))
}

func editFormView(c echo.Context, page *models.LandingPage, input services.LandingPageInput) pages.LandingPageFormView {
	history, err := services.GetResourceAuditHistory(db.DB, auditResourceLandingPage, page.ID)
	if err != nil {
		zlog.Warn().Err(err).Str("landing_page_id", page.ID).Msg("Failed to load audit history")
	}
	return pages.LandingPageFormView{
		ID:        page.ID,
		Input:     input,
		PublicURL: services.PublicURL(getConfig(c).AppURL, page),
		History:   history,
	}
}

func renderLandingPageForm(c echo.Context, status int, view pages.LandingPageFormView) error {
	return renderStatus(c, status, pages.AdminLandingPageForm(
		c.Request().Context(), middleware.GetCSRFToken(c), middleware.GetCurrentUser(c), view))
}

// bindLandingPageInput reads the form and stores an uploaded banner, which
// replaces the banner URL field.
func bindLandingPageInput(c echo.Context) (services.LandingPageInput, error) {
	in := services.LandingPageInput{
		Slug:             c.FormValue("slug"),
		Name:             c.FormValue("name"),
		Title:            c.FormValue("title"),
		Subtitle:         c.FormValue("subtitle"),
		Description:      c.FormValue("description"),
		BannerType:       c.FormValue("banner_type"),
		BannerURL:        c.FormValue("banner_url"),
		AboutTitle:       c.FormValue("about_title"),
		AboutDescription: c.FormValue("about_description"),
		ButtonText:       c.FormValue("button_text"),
		Colors: models.ThemeColors{
			Primary:    c.FormValue("color_primary"),
			Secondary:  c.FormValue("color_secondary"),
			Background: c.FormValue("color_background"),
			Text:       c.FormValue("color_text"),
			Button:     c.FormValue("color_button"),
		},
		Active: c.FormValue("active") == "true",
	}

	fileHeader, err := c.FormFile("banner_file")
	if err != nil || fileHeader == nil || fileHeader.Size == 0 {
		return in, nil
	}
	url, bannerType, err := services.UploadBanner(c.Request().Context(), services.Storage, fileHeader)
	if err != nil {
		return in, err
	}
	in.BannerURL = url
	in.BannerType = bannerType
	return in, nil
}

// CreateLandingPageHandler handles POST /admin/landing-pages
func CreateLandingPageHandler(c echo.Context) error {
	in, err := bindLandingPageInput(c)
	if err == nil {
		var page *models.LandingPage
		page, err = landingPageStore().Create(c.Request().Context(), in)
		if err == nil {
			services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
				Action:       models.AuditActionCreate,
				ResourceType: auditResourceLandingPage,
				ResourceID:   page.ID,
				ResourceName: page.DisplayName(),
				NewValues:    services.InputFromLandingPage(page),
			})
			return c.Redirect(http.StatusSeeOther, "/admin/landing-pages?flash="+flashSaved)
		}
	}

	if services.KindOf(err) == services.KindInternal {
		return err
	}
	status, msg := errorResponse(err)
	return renderLandingPageForm(c, status, pages.LandingPageFormView{Input: in, Error: msg})
}

// UpdateLandingPageHandler handles POST /admin/landing-pages/:id
func UpdateLandingPageHandler(c echo.Context) error {
	ctx := c.Request().Context()
	store := landingPageStore()

	before, err := store.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	oldValues := services.InputFromLandingPage(before)

	in, err := bindLandingPageInput(c)
	if err == nil {
		var page *models.LandingPage
		page, err = store.Update(ctx, before.ID, in)
		if err == nil {
			services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
				Action:       models.AuditActionUpdate,
				ResourceType: auditResourceLandingPage,
				ResourceID:   page.ID,
				ResourceName: page.DisplayName(),
				OldValues:    oldValues,
				NewValues:    services.InputFromLandingPage(page),
			})
			if before.BannerURL != page.BannerURL {
				removeUnusedBanner(ctx, before.BannerURL)
			}
			return c.Redirect(http.StatusSeeOther, "/admin/landing-pages?flash="+flashSaved)
		}
	}

	if services.KindOf(err) == services.KindInternal {
		return err
	}
	status, msg := errorResponse(err)
	view := editFormView(c, before, in)
	view.Error = msg
	return renderLandingPageForm(c, status, view)
}

// DeleteLandingPageHandler hard-deletes a page; its leads are kept
func DeleteLandingPageHandler(c echo.Context) error {
	ctx := c.Request().Context()
	store := landingPageStore()

	page, err := store.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, page.ID); err != nil {
		return err
	}
	removeUnusedBanner(ctx, page.BannerURL)

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionDelete,
		ResourceType: auditResourceLandingPage,
		ResourceID:   page.ID,
		ResourceName: page.DisplayName(),
		OldValues:    services.InputFromLandingPage(page),
	})

	// HTMX swaps the row out with the empty body
	if isHTMX(c) {
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/landing-pages?flash="+flashDeleted)
}

// removeUnusedBanner deletes a stored banner once no page points at it
func removeUnusedBanner(ctx context.Context, bannerURL string) {
	if _, ok := services.BannerKey(services.Storage, bannerURL); !ok {
		return
	}
	var refs int64
	if err := db.DB.WithContext(ctx).Model(&models.LandingPage{}).Where("banner_url = ?", bannerURL).Count(&refs).Error; err != nil {
		zlog.Warn().Err(err).Msg("Failed to check banner references")
		return
	}
	if refs == 0 {
		services.RemoveBanner(ctx, services.Storage, bannerURL)
	}
}

// ToggleLandingPageHandler flips the active flag
func ToggleLandingPageHandler(c echo.Context) error {
	ctx := c.Request().Context()
	store := landingPageStore()

	page, err := store.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	page, err = store.SetActive(ctx, page.ID, !page.Active)
	if err != nil {
		return err
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionUpdate,
		ResourceType: auditResourceLandingPage,
		ResourceID:   page.ID,
		ResourceName: page.DisplayName(),
		OldValues:    map[string]bool{"active": !page.Active},
		NewValues:    map[string]bool{"active": page.Active},
	})

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/landing-pages")
	}
	var count int64
	if err := db.DB.WithContext(ctx).Model(&models.Lead{}).Where("landing_page_id = ?", page.ID).Count(&count).Error; err != nil {
		zlog.Warn().Err(err).Msg("Failed to count leads for row")
	}
	row := partials.LandingPageRow{Page: *page, Leads: count, PublicURL: services.PublicURL(getConfig(c).AppURL, page)}
	return render(c, partials.LandingPageRowItem(ctx, middleware.GetCSRFToken(c), row))
}

// LandingPageLinkHandler returns the public URL for the copy button
func LandingPageLinkHandler(c echo.Context) error {
	page, err := landingPageStore().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"url":  services.PublicURL(getConfig(c).AppURL, page),
		"slug": page.Slug,
	})
}

// LandingPageQRCodeHandler redirects to the chart service image for the public URL
func LandingPageQRCodeHandler(c echo.Context) error {
	page, err := landingPageStore().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	cfg := getConfig(c)
	qrService := cfg.QRServiceURL
	if qrService == "" {
		qrService = config.DefaultQRServiceURL
	}
	return c.Redirect(http.StatusFound, services.QRCodeURL(qrService, services.PublicURL(cfg.AppURL, page)))
}
