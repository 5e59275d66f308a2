package handlers

import (
	"bytes"
	"net/http"

	"metanoia_app_go/db"
	"metanoia_app_go/middleware"
	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LeadsHandler lists leads, optionally for a single landing page
func LeadsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	selected := c.QueryParam("landing_page_id")

	leads, err := services.ListLeads(ctx, db.DB, selected)
	if err != nil {
		return err
	}
	list, err := landingPageStore().List(ctx)
	if err != nil {
		return err
	}

	view := pages.AdminLeadsView{Leads: leads, Pages: list, SelectedID: selected}
	return render(c, pages.AdminLeads(ctx, middleware.GetCSRFToken(c), middleware.GetCurrentUser(c), view))
}

// ExportLeadsHandler downloads the filtered leads as CSV (default) or XLSX
func ExportLeadsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	selected := c.QueryParam("landing_page_id")
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		return services.NewValidationError("Formato de exportação inválido")
	}

	// The filename uses the slug of the filtered page, which must still exist
	var page *models.LandingPage
	if selected != "" {
		p, err := landingPageStore().Get(ctx, selected)
		if err != nil && services.KindOf(err) != services.KindNotFound {
			return err
		}
		page = p
	}

	leads, err := services.ListLeads(ctx, db.DB, selected)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = mimeXLSX
		err = services.WriteLeadsXLSX(&buf, leads)
	} else {
		err = services.WriteLeadsCSV(&buf, leads)
	}
	if err != nil {
		return services.Internal(err, "exportar leads")
	}

	filename := services.LeadExportFilename(page, format)
	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionExport,
		ResourceType: "Lead",
		ResourceID:   selected,
		ResourceName: filename,
		Description:  "Exportação de leads",
	})

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
