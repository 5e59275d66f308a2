package services

import (
	"testing"
	"time"

	"metanoia_app_go/config"
	"metanoia_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestSendEmailTestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	err := SendEmail(cfg, &Email{To: []string{"equipe@metanoia.org"}, Subject: "Oi", TextBody: "Olá"})
	assert.NoError(t, err)
}

func TestSendEmailRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false}
	err := SendEmail(cfg, &Email{To: []string{"equipe@metanoia.org"}, Subject: "Oi", TextBody: "Olá"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestBuildNewLeadEmail(t *testing.T) {
	page := &models.LandingPage{ID: "lp-1", Name: "Palestra <Mindset>", Slug: "palestra"}
	lead := &models.Lead{Name: "Ana", WhatsApp: "11999999999", Email: "ana@x.com", Age: 17, CreatedAt: time.Date(2025, 3, 7, 15, 0, 0, 0, time.UTC)}

	email := BuildNewLeadEmail("equipe@metanoia.org", "https://projetometanoia.org/", page, lead)

	assert.Equal(t, []string{"equipe@metanoia.org"}, email.To)
	assert.Equal(t, "Nova inscrição: Palestra <Mindset>", email.Subject)
	assert.Contains(t, email.HTMLBody, "Palestra &lt;Mindset&gt;")
	assert.Contains(t, email.HTMLBody, "https://projetometanoia.org/admin/leads?landing_page_id=lp-1")
	assert.Contains(t, email.TextBody, "Idade: 17")
	assert.Contains(t, email.TextBody, "07/03/2025")
}

func TestBuildContactEmail(t *testing.T) {
	msg := &models.ContactMessage{Name: "João", Email: "joao@x.com", Subject: "Voluntariado", Message: "<b>Quero ajudar</b>"}
	email := BuildContactEmail("equipe@metanoia.org", msg)
	assert.Contains(t, email.Subject, "Voluntariado")
	assert.Contains(t, email.HTMLBody, "&lt;b&gt;Quero ajudar")
}
