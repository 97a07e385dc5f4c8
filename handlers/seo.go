package handlers

import (
	"strings"

	"studio_landing_go/models"
	"studio_landing_go/services/i18n"
)

const ogImagePath = "/static/images/favicon.svg"

// supportedLocales are offered as hreflang alternates
var supportedLocales = []string{"ru", "en"}

// Page paths, relative to APP_URL
var pagePaths = map[string]string{
	"landing": "/",
}

// GetSEO returns the SEO configuration for a page in lang, nil for unknown pages
func GetSEO(page, lang, appURL string) *models.SEO {
	path, ok := pagePaths[page]
	if !ok {
		return nil
	}

	title := i18n.Translate(lang, page+".title") + " | " + i18n.Translate(lang, page+".brand")
	seo := models.DefaultSEO(title, i18n.Translate(lang, page+".description")).
		WithLocale(lang, supportedLocales)

	if appURL != "" {
		base := strings.TrimRight(appURL, "/")
		seo.WithCanonical(base + path).WithOGImage(base + ogImagePath)
	}
	return seo
}
