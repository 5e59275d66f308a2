package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-safe slug from free text.
// "Palestra: Mindset & Foco!" becomes "palestra-mindset-foco". The result only
// contains [a-z0-9-], never starts or ends with "-", and may be empty when the
// input has no usable characters. Applying it twice gives the same result.
func GenerateSlug(text string) string {
	slug := strings.ToLower(text)

	// Decompose accented letters and drop the combining marks: "ção" -> "cao"
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, slug); err == nil {
		slug = stripped
	}

	// Unicode spaces count as separators too
	slug = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, slug)

	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// IsValidSlug reports whether s is already in canonical slug form
func IsValidSlug(s string) bool {
	return s != "" && GenerateSlug(s) == s
}
