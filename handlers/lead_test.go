package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"studio_landing_go/models"
	"studio_landing_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRelay(t *testing.T, body []byte) models.RelayResponse {
	t.Helper()
	var resp models.RelayResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestSendLeadHandler(t *testing.T) {
	body := `{"name":"Anna","email":"anna@example.com","messageText":"Hi.","recaptchaToken":"tok"}`

	t.Run("Success", func(t *testing.T) {
		relay := &fakeRelay{}
		_, c, rec := setupEcho(http.MethodPost, "/api/send-tg", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, SendLeadHandler(relay)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Сообщение успешно отправлено!", decodeRelay(t, rec.Body.Bytes()).Success)
		require.Len(t, relay.leads, 1)
		assert.Equal(t, models.LeadPayload{Name: "Anna", Email: "anna@example.com", MessageText: "Hi.", RecaptchaToken: "tok"}, relay.leads[0])
	})

	t.Run("Forward error maps status and fields", func(t *testing.T) {
		relay := &fakeRelay{err: &services.ForwardError{
			Kind:    services.ErrInvalidFormData,
			Status:  http.StatusBadRequest,
			Message: "Некорректные данные формы",
			Fields:  map[string]string{"email": "bad"},
		}}
		_, c, rec := setupEcho(http.MethodPost, "/api/send-tg", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, SendLeadHandler(relay)(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeRelay(t, rec.Body.Bytes())
		assert.Equal(t, "Некорректные данные формы", resp.Error)
		assert.Equal(t, "bad", resp.Fields["email"])
		assert.Empty(t, resp.Success)
	})

	t.Run("Misconfigured", func(t *testing.T) {
		relay := &fakeRelay{err: &services.ForwardError{
			Kind:    services.ErrServerMisconfigured,
			Status:  http.StatusInternalServerError,
			Message: "Не настроены переменные окружения",
		}}
		_, c, rec := setupEcho(http.MethodPost, "/api/send-tg", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, SendLeadHandler(relay)(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Не настроены переменные окружения", decodeRelay(t, rec.Body.Bytes()).Error)
	})

	t.Run("Unexpected error", func(t *testing.T) {
		relay := &fakeRelay{err: errors.New("boom")}
		_, c, rec := setupEcho(http.MethodPost, "/api/send-tg", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, SendLeadHandler(relay)(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Ошибка сервера.", decodeRelay(t, rec.Body.Bytes()).Error)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		relay := &fakeRelay{}
		_, c, rec := setupEcho(http.MethodPost, "/api/send-tg", strings.NewReader("{nope"))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, SendLeadHandler(relay)(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, relay.leads)
	})
}

func TestSubscribeHandler(t *testing.T) {
	t.Run("Form encoded", func(t *testing.T) {
		relay := &fakeRelay{}
		_, c, rec := setupEcho(http.MethodPost, "/api/subscribe", strings.NewReader("email=a%40b.co&recaptchaToken=tok"))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

		require.NoError(t, SubscribeHandler(relay)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Вы подписаны!", decodeRelay(t, rec.Body.Bytes()).Success)
		require.Len(t, relay.subscriptions, 1)
		assert.Equal(t, models.SubscriptionPayload{Email: "a@b.co", RecaptchaToken: "tok"}, relay.subscriptions[0])
	})

	t.Run("Missing token", func(t *testing.T) {
		relay := &fakeRelay{err: &services.ForwardError{
			Kind:    services.ErrMissingSecurityToken,
			Status:  http.StatusBadRequest,
			Message: "Требуется проверка безопасности.",
		}}
		_, c, rec := setupEcho(http.MethodPost, "/api/subscribe", strings.NewReader(`{"email":"a@b.co"}`))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		require.NoError(t, SubscribeHandler(relay)(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
