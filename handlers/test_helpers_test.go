package handlers

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"studio_landing_go/config"
	"studio_landing_go/models"
	"studio_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(); err != nil {
		log.Fatalf("failed to load translations: %v", err)
	}
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:        "development",
		AppURL:             "https://studio.example.com",
		SiteLabel:          "barbarisstudio.vercel",
		RecaptchaSiteKey:   "site-key",
		RecaptchaSecretKey: "secret",
		TelegramBotToken:   "123:abc",
		TelegramChatID:     "-100",
		EmailTestMode:      true,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", testConfig())
	c.Set("locale", "ru")
	c.SetRequest(req.WithContext(i18n.WithLocale(req.Context(), "ru")))

	return e, c, rec
}

// fakeRelay records calls and returns the configured error
type fakeRelay struct {
	err           error
	leads         []models.LeadPayload
	subscriptions []models.SubscriptionPayload
	remoteIPs     []string
}

func (f *fakeRelay) Forward(ctx context.Context, payload models.LeadPayload, remoteIP string) error {
	f.leads = append(f.leads, payload)
	f.remoteIPs = append(f.remoteIPs, remoteIP)
	return f.err
}

func (f *fakeRelay) ForwardSubscription(ctx context.Context, payload models.SubscriptionPayload, remoteIP string) error {
	f.subscriptions = append(f.subscriptions, payload)
	f.remoteIPs = append(f.remoteIPs, remoteIP)
	return f.err
}
