package models

// SEO contains metadata for search engine optimization and social sharing
type SEO struct {
	Title       string   // Page title
	Description string   // Meta description (150-160 chars recommended)
	Canonical   string   // Canonical URL
	OGImage     string   // Open Graph image URL
	OGType      string   // Open Graph type (website, article, etc.)
	NoIndex     bool     // If true, adds noindex directive
	Locale      string   // Current locale (e.g., "ru", "en")
	AltLocales  []string // Alternative locales for hreflang
}

// DefaultSEO returns SEO with sensible defaults
func DefaultSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      "website",
		Locale:      "ru",
		AltLocales:  []string{"en"},
	}
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

// WithLocale sets the current locale and the alternatives offered via hreflang
func (s *SEO) WithLocale(locale string, all []string) *SEO {
	s.Locale = locale
	alts := make([]string, 0, len(all))
	for _, l := range all {
		if l != locale {
			alts = append(alts, l)
		}
	}
	s.AltLocales = alts
	return s
}

// WithNoIndex sets the noindex directive
func (s *SEO) WithNoIndex() *SEO {
	s.NoIndex = true
	return s
}
