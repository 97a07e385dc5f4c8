package handlers

import (
	"studio_landing_go/config"
	"studio_landing_go/middleware"
	"studio_landing_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the studio landing page with the lead form
func LandingHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	ctx := c.Request().Context()

	component := pages.Landing(pages.LandingData{
		SEO:              GetSEO("landing", middleware.GetLocale(c), cfg.AppURL),
		RecaptchaSiteKey: cfg.RecaptchaSiteKey,
	})

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(ctx, c.Response().Writer)
}
