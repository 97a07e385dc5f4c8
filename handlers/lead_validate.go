package handlers

import (
	"net/http"

	"studio_landing_go/middleware"
	"studio_landing_go/models"
	"studio_landing_go/services/i18n"
	"studio_landing_go/services/leadform"
	"studio_landing_go/templates/partials"

	"github.com/labstack/echo/v4"
)

var leadFields = []string{models.FieldName, models.FieldEmail, models.FieldPhone, models.FieldMessageText}

// ValidateLeadHandler runs the lead rules without sending anything.
// HTMX requests get out-of-band message slots; others get JSON.
func ValidateLeadHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var draft models.LeadDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, models.RelayResponse{Error: i18n.T(ctx, "relay.invalid_form")})
	}

	result := leadform.Validate(middleware.GetLocale(c), draft)

	if c.Request().Header.Get("HX-Request") == "true" {
		fields := fieldsFor(c.Request().Header.Get("HX-Trigger-Name"))
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		return partials.LeadFieldErrors(fields, result.Errors).Render(ctx, c.Response().Writer)
	}

	if !result.Valid() {
		return c.JSON(http.StatusBadRequest, models.RelayResponse{
			Error:  i18n.T(ctx, "relay.invalid_form"),
			Fields: result.Errors,
		})
	}
	return c.JSON(http.StatusOK, models.RelayResponse{})
}

// fieldsFor limits live feedback to the edited input. Email and phone share
// the either-or rule, so they are refreshed together.
func fieldsFor(trigger string) []string {
	switch trigger {
	case models.FieldName, models.FieldMessageText:
		return []string{trigger}
	case models.FieldEmail, models.FieldPhone:
		return []string{models.FieldEmail, models.FieldPhone}
	default:
		return leadFields
	}
}
