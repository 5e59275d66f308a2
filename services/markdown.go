package services

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	markdownSanitizer = bluemonday.UGCPolicy()
	plainTextPolicy   = bluemonday.StrictPolicy()
)

// RenderMarkdown converts about-section Markdown into sanitized HTML.
// Raw HTML in the source is dropped by the sanitizer.
func RenderMarkdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(src), &buf); err != nil {
		return plainTextPolicy.Sanitize(src)
	}
	return string(markdownSanitizer.SanitizeBytes(buf.Bytes()))
}

// StripTags removes every HTML tag from user supplied text
func StripTags(s string) string {
	return strings.TrimSpace(plainTextPolicy.Sanitize(s))
}
