package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"metanoia_app_go/models"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// LeadExportHeader is the first row of every lead export
var LeadExportHeader = []string{"Nome", "WhatsApp", "Email", "Idade", "Landing Page", "Data"}

// OrphanedPageLabel replaces the landing page name of leads whose page was deleted
const OrphanedPageLabel = "N/A"

// exportLocation renders export dates in Brazilian local time
var exportLocation = loadExportLocation()

func loadExportLocation() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.Local
	}
	return loc
}

// FormatDateBR formats t as dd/mm/yyyy
func FormatDateBR(t time.Time) string {
	return t.In(exportLocation).Format("02/01/2006")
}

// LeadExportFilename is leads-<slug>.<ext>, or leads-todos.<ext> without a page filter
func LeadExportFilename(page *models.LandingPage, ext string) string {
	name := "todos"
	if page != nil && page.Slug != "" {
		name = page.Slug
	}
	return "leads-" + name + "." + ext
}

// LeadExportRow flattens a lead in header order
func LeadExportRow(lead models.Lead) []string {
	pageName := OrphanedPageLabel
	if !lead.IsOrphaned() {
		pageName = lead.LandingPage.DisplayName()
	}
	return []string{
		lead.Name,
		lead.WhatsApp,
		lead.Email,
		strconv.Itoa(lead.Age),
		pageName,
		FormatDateBR(lead.CreatedAt),
	}
}

// WriteLeadsCSV writes the header and one RFC 4180 record per lead
func WriteLeadsCSV(w io.Writer, leads []models.Lead) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(LeadExportHeader); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, lead := range leads {
		if err := writer.Write(LeadExportRow(lead)); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

// WriteLeadsXLSX writes the same table as WriteLeadsCSV as a single-sheet workbook
func WriteLeadsXLSX(w io.Writer, leads []models.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Leads"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "create header style")
	}

	if err := writeXLSXRow(f, sheet, 1, LeadExportHeader); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(LeadExportHeader))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return errors.Wrap(err, "style header")
	}

	for i, lead := range leads {
		if err := writeXLSXRow(f, sheet, i+2, LeadExportRow(lead)); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return errors.Wrap(err, "set column width")
	}

	return errors.Wrap(f.Write(w), "write xlsx")
}

func writeXLSXRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "cell name")
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return errors.Wrap(f.SetSheetRow(sheet, cell, &cells), "write xlsx row")
}
