package middleware

import (
	"net/http"
	"strings"
	"time"

	"studio_landing_go/config"
	"studio_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("ru")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = i18n.DefaultLang
				}
				setLangCookie(c, lang, cfg != nil && cfg.IsProduction())
			} else if cookie, err := c.Cookie("lang"); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

// fromAcceptLanguage picks the first supported primary tag, in header order
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		tag = strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if i18n.IsSupported(tag) {
			return tag
		}
	}
	return i18n.DefaultLang
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, lang string) {
	cfg, ok := c.Get("config").(*config.Config)
	setLangCookie(c, lang, ok && cfg.IsProduction())
}

func setLangCookie(c echo.Context, lang string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = "lang"
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.DefaultLang
}
