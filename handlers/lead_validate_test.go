package handlers

import (
	"net/http"
	"strings"
	"testing"

	"studio_landing_go/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLeadHandler(t *testing.T) {
	t.Run("JSON valid", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/htmx/lead/validate", strings.NewReader(`{"name":"Anna","phone":"+7 (912) 345-67-89"}`))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, ValidateLeadHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeRelay(t, rec.Body.Bytes()).Fields)
	})

	t.Run("JSON invalid", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/htmx/lead/validate", strings.NewReader(`{"name":"","email":"","phone":""}`))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, ValidateLeadHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		fields := decodeRelay(t, rec.Body.Bytes()).Fields
		assert.Equal(t, "Укажите имя", fields[models.FieldName])
		assert.Equal(t, fields[models.FieldEmail], fields[models.FieldPhone])
	})

	t.Run("HTMX renders edited field only", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/htmx/lead/validate", strings.NewReader("name=&email=bad&phone="))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		c.Request().Header.Set("HX-Request", "true")
		c.Request().Header.Set("HX-Trigger-Name", models.FieldEmail)

		require.NoError(t, ValidateLeadHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		html := rec.Body.String()
		assert.Contains(t, html, `id="error-email"`)
		assert.Contains(t, html, `id="error-phone"`)
		assert.Contains(t, html, "Укажите корректный email")
		assert.NotContains(t, html, `id="error-name"`)
	})

	t.Run("HTMX without trigger renders all fields", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/htmx/lead/validate", strings.NewReader("name=Anna&email=a%40b.co"))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		c.Request().Header.Set("HX-Request", "true")

		require.NoError(t, ValidateLeadHandler(c))
		html := rec.Body.String()
		for _, f := range leadFields {
			assert.Contains(t, html, `id="error-`+f+`" class="field-error" role="alert" hx-swap-oob="true"></p>`)
		}
	})
}

func TestFieldsFor(t *testing.T) {
	assert.Equal(t, []string{models.FieldName}, fieldsFor(models.FieldName))
	assert.Equal(t, []string{models.FieldEmail, models.FieldPhone}, fieldsFor(models.FieldPhone))
	assert.Equal(t, leadFields, fieldsFor(""))
}
