package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"metanoia_app_go/config"
	"metanoia_app_go/models"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	zlog "github.com/rs/zerolog/log"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using the Resend API.
// In test mode the message is logged instead.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmail(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return errors.New("RESEND_API_KEY not configured")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if params.Html == "" && params.Text == "" {
		return errors.New("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	sent, err := client.Emails.Send(params)
	if err != nil {
		return errors.Wrap(err, "send email via Resend")
	}

	zlog.Info().Str("resend_id", sent.Id).Strs("to", email.To).Msg("Email sent")
	return nil
}

func logEmail(email *Email) {
	zlog.Info().
		Strs("to", email.To).
		Str("subject", email.Subject).
		Str("text", email.TextBody).
		Msg("Email logged (test mode, not sent)")
}

// SendEmailAsync sends a copy of email in a goroutine so handlers don't wait on Resend
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			zlog.Error().Err(err).Str("subject", emailCopy.Subject).Msg("Failed to send async email")
		}
	}()
}

var newLeadHTML = template.Must(template.New("new_lead").Parse(`<h2>Nova inscrição: {{.Page}}</h2>
<table>
<tr><td><strong>Nome</strong></td><td>{{.Lead.Name}}</td></tr>
<tr><td><strong>WhatsApp</strong></td><td>{{.Lead.WhatsApp}}</td></tr>
<tr><td><strong>Email</strong></td><td>{{.Lead.Email}}</td></tr>
<tr><td><strong>Idade</strong></td><td>{{.Lead.Age}}</td></tr>
<tr><td><strong>Data</strong></td><td>{{.Date}}</td></tr>
</table>
<p><a href="{{.AdminURL}}">Ver leads no painel</a></p>`))

var contactHTML = template.Must(template.New("contact").Parse(`<h2>Nova mensagem de contato</h2>
<p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt; {{.Phone}}</p>
<p><strong>Assunto:</strong> {{.Subject}}</p>
<p>{{.Message}}</p>`))

// BuildNewLeadEmail creates the notification sent to the team for each new lead
func BuildNewLeadEmail(to, appURL string, page *models.LandingPage, lead *models.Lead) *Email {
	data := struct {
		Page     string
		Lead     *models.Lead
		Date     string
		AdminURL string
	}{
		Page:     page.DisplayName(),
		Lead:     lead,
		Date:     FormatDateBR(lead.CreatedAt),
		AdminURL: strings.TrimSuffix(appURL, "/") + "/admin/leads?landing_page_id=" + page.ID,
	}

	var buf bytes.Buffer
	if err := newLeadHTML.Execute(&buf, data); err != nil {
		zlog.Error().Err(err).Msg("Failed to render new lead email")
	}

	text := fmt.Sprintf("Nova inscrição em %s\n\nNome: %s\nWhatsApp: %s\nEmail: %s\nIdade: %d\nData: %s\n\n%s\n",
		data.Page, lead.Name, lead.WhatsApp, lead.Email, lead.Age, data.Date, data.AdminURL)

	return &Email{
		To:       []string{to},
		Subject:  "Nova inscrição: " + data.Page,
		HTMLBody: buf.String(),
		TextBody: text,
	}
}

// BuildContactEmail creates the notification for a public contact message
func BuildContactEmail(to string, msg *models.ContactMessage) *Email {
	var buf bytes.Buffer
	if err := contactHTML.Execute(&buf, msg); err != nil {
		zlog.Error().Err(err).Msg("Failed to render contact email")
	}

	return &Email{
		To:       []string{to},
		Subject:  "Contato pelo site: " + msg.Subject,
		HTMLBody: buf.String(),
		TextBody: fmt.Sprintf("%s <%s> %s\n\n%s\n", msg.Name, msg.Email, msg.Phone, msg.Message),
	}
}
