package services

import (
	"context"
	"strconv"
	"strings"

	"metanoia_app_go/models"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LeadInput is the raw public form submission
type LeadInput struct {
	Name     string
	WhatsApp string
	Email    string
	Age      string

	IPAddress string
	UserAgent string
}

// Validate checks the required fields and parses the age
func (in *LeadInput) Validate() (int, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	in.Email = strings.TrimSpace(in.Email)
	in.Age = strings.TrimSpace(in.Age)

	if in.Name == "" || in.WhatsApp == "" || in.Email == "" || in.Age == "" {
		return 0, &AppError{Kind: KindValidation, Message: "Preencha todos os campos obrigatórios"}
	}
	if !strings.Contains(in.Email, "@") {
		return 0, &AppError{Kind: KindValidation, Message: "Informe um email válido"}
	}
	age, err := strconv.Atoi(in.Age)
	if err != nil || age < 0 {
		return 0, &AppError{Kind: KindValidation, Message: "Informe uma idade válida"}
	}
	return age, nil
}

// CreateLead stores one lead attributed to page
func CreateLead(ctx context.Context, db *gorm.DB, page *models.LandingPage, in LeadInput) (*models.Lead, error) {
	age, err := in.Validate()
	if err != nil {
		return nil, err
	}

	lead := &models.Lead{
		LandingPageID: page.ID,
		Name:          in.Name,
		WhatsApp:      in.WhatsApp,
		Email:         in.Email,
		Age:           age,
		IPAddress:     in.IPAddress,
		UserAgent:     in.UserAgent,
	}

	if err := db.WithContext(ctx).Create(lead).Error; err != nil {
		zlog.Error().Err(err).Str("landing_page_id", page.ID).Msg("Failed to create lead")
		return nil, Internal(err, "enviar inscrição")
	}

	LeadsSubmitted.WithLabelValues(page.Slug).Inc()
	return lead, nil
}

// ListLeads returns leads newest first with their landing page preloaded.
// An empty landingPageID lists every lead. Leads whose page was deleted
// come back with a nil LandingPage.
func ListLeads(ctx context.Context, db *gorm.DB, landingPageID string) ([]models.Lead, error) {
	query := db.WithContext(ctx).Preload("LandingPage")
	if landingPageID != "" {
		query = query.Where("landing_page_id = ?", landingPageID)
	}

	var leads []models.Lead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		zlog.Error().Err(err).Str("landing_page_id", landingPageID).Msg("Failed to list leads")
		return nil, Internal(err, "carregar leads")
	}
	return leads, nil
}

// CountLeadsByLandingPage returns the number of leads per landing page id
func CountLeadsByLandingPage(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		LandingPageID string
		Total         int64
	}
	err := db.WithContext(ctx).Model(&models.Lead{}).
		Select("landing_page_id, COUNT(*) AS total").
		Group("landing_page_id").
		Scan(&rows).Error
	if err != nil {
		zlog.Error().Err(err).Msg("Failed to count leads")
		return nil, Internal(err, "contar leads")
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.LandingPageID] = r.Total
	}
	return counts, nil
}
