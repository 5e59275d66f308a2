package jobs

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"metanoia_app_go/config"
	"metanoia_app_go/models"
	"metanoia_app_go/services"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DigestLine is the number of leads one landing page received in the digest window
type DigestLine struct {
	Page  string
	Count int
}

// CollectLeadDigest groups the leads created in the 24 hours before now by page name
func CollectLeadDigest(database *gorm.DB, now time.Time) ([]DigestLine, error) {
	var leads []models.Lead
	err := database.Preload("LandingPage").
		Where("created_at >= ? AND created_at < ?", now.Add(-24*time.Hour), now).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, lead := range leads {
		name := services.OrphanedPageLabel
		if !lead.IsOrphaned() {
			name = lead.LandingPage.DisplayName()
		}
		counts[name]++
	}

	lines := make([]DigestLine, 0, len(counts))
	for page, count := range counts {
		lines = append(lines, DigestLine{Page: page, Count: count})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Count != lines[j].Count {
			return lines[i].Count > lines[j].Count
		}
		return lines[i].Page < lines[j].Page
	})
	return lines, nil
}

var leadDigestHTML = template.Must(template.New("lead_digest").Parse(`<h2>Resumo de inscrições</h2>
<ul>
{{range .Lines}}<li>{{.Page}}: <strong>{{.Count}}</strong></li>
{{end}}</ul>
<p><a href="{{.AdminURL}}">Ver leads</a></p>`))

// BuildLeadDigestEmail renders the daily summary; nil when there is nothing to report
func BuildLeadDigestEmail(to, appURL string, lines []DigestLine, now time.Time) *services.Email {
	if len(lines) == 0 {
		return nil
	}

	data := struct {
		Lines    []DigestLine
		AdminURL string
	}{
		Lines:    lines,
		AdminURL: strings.TrimSuffix(appURL, "/") + "/admin/leads",
	}

	total := 0
	var text strings.Builder
	for _, l := range lines {
		total += l.Count
		fmt.Fprintf(&text, "%s: %d\n", l.Page, l.Count)
	}
	fmt.Fprintf(&text, "\n%s\n", data.AdminURL)

	var html bytes.Buffer
	if err := leadDigestHTML.Execute(&html, data); err != nil {
		zlog.Error().Err(err).Msg("Failed to render lead digest email")
	}

	return &services.Email{
		To:       []string{to},
		Subject:  fmt.Sprintf("%d nova(s) inscrição(ões) em %s", total, services.FormatDateBR(now)),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}
}

// SendLeadDigest emails yesterday's lead counts to the notification address
func SendLeadDigest(database *gorm.DB, cfg *config.Config, now time.Time) {
	lines, err := CollectLeadDigest(database, now)
	if err != nil {
		zlog.Error().Err(err).Msg("[JOB] Failed to collect lead digest")
		return
	}

	email := BuildLeadDigestEmail(cfg.LeadNotifyEmail, cfg.AppURL, lines, now)
	if email == nil {
		zlog.Debug().Msg("[JOB] No leads for digest")
		return
	}

	if err := services.SendEmail(cfg, email); err != nil {
		zlog.Error().Err(err).Msg("[JOB] Failed to send lead digest")
	}
}
