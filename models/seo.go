package models

// SEO contains metadata for search engines and social sharing previews
type SEO struct {
	Title       string // Page title
	Description string // Meta description (150-160 chars recommended)
	Canonical   string // Canonical URL
	OGImage     string // Open Graph image URL
	OGType      string // Open Graph type (website, article, etc.)
	NoIndex     bool   // If true, adds noindex directive
	Locale      string // Current locale (e.g., "pt_BR")
}

// DefaultSEO returns SEO with sensible defaults
func DefaultSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      "website",
		Locale:      "pt_BR",
	}
}

// LandingPageSEO builds share metadata for a public landing page.
// Only image banners are usable as preview images.
func LandingPageSEO(page *LandingPage, canonical string) *SEO {
	desc := page.Subtitle
	if desc == "" {
		desc = page.Description
	}
	if r := []rune(desc); len(r) > 160 {
		desc = string(r[:157]) + "..."
	}
	seo := DefaultSEO(page.Title, desc).WithCanonical(canonical)
	if page.BannerType == BannerTypeImage && page.BannerURL != "" {
		seo.WithOGImage(page.BannerURL)
	}
	return seo
}

// WithCanonical sets the canonical URL
func (s *SEO) WithCanonical(url string) *SEO {
	s.Canonical = url
	return s
}

// WithOGImage sets the Open Graph image
func (s *SEO) WithOGImage(imageURL string) *SEO {
	s.OGImage = imageURL
	return s
}

// WithNoIndex sets the noindex directive
func (s *SEO) WithNoIndex() *SEO {
	s.NoIndex = true
	return s
}
