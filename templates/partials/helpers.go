package partials

import (
	"regexp"
	"strconv"
	"strings"

	"metanoia_app_go/models"
)

// safeColor accepts hex, named and functional CSS colors, nothing that could close the declaration
var safeColor = regexp.MustCompile(`^[#a-zA-Z0-9(),.%\s-]{1,64}$`)

// ColorStyle turns the page colors into CSS custom properties.
// Empty or unsafe values are skipped; no colors yields "".
func ColorStyle(colors models.ThemeColors) string {
	vars := []struct {
		name  string
		value string
	}{
		{"--lp-primary", colors.Primary},
		{"--lp-secondary", colors.Secondary},
		{"--lp-background", colors.Background},
		{"--lp-text", colors.Text},
		{"--lp-button", colors.Button},
	}

	var b strings.Builder
	for _, v := range vars {
		value := strings.TrimSpace(v.value)
		if value == "" || !safeColor.MatchString(value) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(v.name + ": " + value + ";")
	}
	return b.String()
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
