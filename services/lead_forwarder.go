package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"studio_landing_go/config"
	"studio_landing_go/models"
	"studio_landing_go/services/i18n"
	"studio_landing_go/services/leadform"

	"github.com/google/uuid"
)

// Form labels used in logs and metrics
const (
	FormLead      = "lead"
	FormSubscribe = "subscribe"
)

// Error kinds returned by the forwarder. A *ForwardError unwraps to one of them.
var (
	ErrMissingSecurityToken = errors.New("missing security token")
	ErrSecurityCheckFailed  = errors.New("security check failed")
	ErrInvalidFormData      = errors.New("invalid form data")
	ErrServerMisconfigured  = errors.New("server misconfigured")
	ErrRelayFailed          = errors.New("relay failed")
)

// ForwardError is a rejected relay request with the status and message
// the visitor should see
type ForwardError struct {
	Kind    error
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *ForwardError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *ForwardError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StatusCode returns the HTTP status for err, 500 when err is not a *ForwardError
func StatusCode(err error) int {
	var fe *ForwardError
	if errors.As(err, &fe) {
		return fe.Status
	}
	return http.StatusInternalServerError
}

// RelayConfig holds the secrets and endpoints the forwarder talks to
type RelayConfig struct {
	TelegramBotToken   string
	TelegramChatID     string
	TelegramAPIURL     string
	RecaptchaSecretKey string
	RecaptchaVerifyURL string
	SiteLabel          string
	Timeout            time.Duration
}

func NewRelayConfig(cfg *config.Config) RelayConfig {
	return RelayConfig{
		TelegramBotToken:   cfg.TelegramBotToken,
		TelegramChatID:     cfg.TelegramChatID,
		TelegramAPIURL:     cfg.TelegramAPIURL,
		RecaptchaSecretKey: cfg.RecaptchaSecretKey,
		RecaptchaVerifyURL: cfg.RecaptchaVerifyURL,
		SiteLabel:          cfg.SiteLabel,
		Timeout:            cfg.OutboundTimeout,
	}
}

// LeadForwarder verifies bot tokens and relays accepted forms to Telegram.
// It keeps no state between requests besides the optional monitor.
type LeadForwarder struct {
	cfg      RelayConfig
	verifier *RecaptchaVerifier
	telegram *TelegramClient
	monitor  *SecurityEventMonitor
	metrics  *LeadMetrics
}

type ForwarderOption func(*LeadForwarder)

// WithSecurityMonitor reports failed bot checks to m
func WithSecurityMonitor(m *SecurityEventMonitor) ForwarderOption {
	return func(f *LeadForwarder) { f.monitor = m }
}

// WithMetrics records outcomes and upstream latency in m
func WithMetrics(m *LeadMetrics) ForwarderOption {
	return func(f *LeadForwarder) { f.metrics = m }
}

func NewLeadForwarder(cfg RelayConfig, opts ...ForwarderOption) *LeadForwarder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultOutboundTimeout
	}
	f := &LeadForwarder{
		cfg:      cfg,
		verifier: NewRecaptchaVerifier(cfg.RecaptchaSecretKey, cfg.RecaptchaVerifyURL, cfg.Timeout),
		telegram: NewTelegramClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, cfg.Timeout),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Forward checks the bot token, re-validates the lead and sends one chat
// message. The response language is taken from ctx.
func (f *LeadForwarder) Forward(ctx context.Context, payload models.LeadPayload, remoteIP string) error {
	lang := i18n.GetLocale(ctx)
	id := uuid.NewString()

	if err := f.checkToken(ctx, lang, id, FormLead, payload.RecaptchaToken, remoteIP); err != nil {
		return f.finish(id, FormLead, err)
	}

	result := leadform.Validate(lang, payload.Draft())
	if !result.Valid() {
		log.Printf("[%s %s] rejected form data: %v", FormLead, id, result.Errors)
		return f.finish(id, FormLead, &ForwardError{
			Kind:    ErrInvalidFormData,
			Status:  http.StatusBadRequest,
			Message: i18n.Translate(lang, "relay.invalid_form"),
			Fields:  result.Errors,
		})
	}

	text := FormatLeadMessage(f.cfg.SiteLabel, *result.Lead)
	return f.finish(id, FormLead, f.send(ctx, lang, text))
}

// ForwardSubscription relays a newsletter signup the same way as a lead
func (f *LeadForwarder) ForwardSubscription(ctx context.Context, payload models.SubscriptionPayload, remoteIP string) error {
	lang := i18n.GetLocale(ctx)
	id := uuid.NewString()

	if err := f.checkToken(ctx, lang, id, FormSubscribe, payload.RecaptchaToken, remoteIP); err != nil {
		return f.finish(id, FormSubscribe, err)
	}

	email, fieldErrs := leadform.ValidateSubscription(lang, payload.Email)
	if fieldErrs != nil {
		return f.finish(id, FormSubscribe, &ForwardError{
			Kind:    ErrInvalidFormData,
			Status:  http.StatusBadRequest,
			Message: i18n.Translate(lang, "relay.invalid_form"),
			Fields:  fieldErrs,
		})
	}

	return f.finish(id, FormSubscribe, f.send(ctx, lang, FormatSubscriptionMessage(email)))
}

// checkToken runs the presence, configuration and provider checks
func (f *LeadForwarder) checkToken(ctx context.Context, lang, id, form, token, remoteIP string) *ForwardError {
	if token == "" {
		return &ForwardError{
			Kind:    ErrMissingSecurityToken,
			Status:  http.StatusBadRequest,
			Message: i18n.Translate(lang, "relay.token_required"),
		}
	}

	if f.cfg.RecaptchaSecretKey == "" {
		return &ForwardError{
			Kind:    ErrServerMisconfigured,
			Status:  http.StatusInternalServerError,
			Message: i18n.Translate(lang, "relay.misconfigured"),
			Err:     errors.New("RECAPTCHA_SECRET_KEY not set"),
		}
	}

	start := time.Now()
	resp, err := f.verifier.Verify(ctx, token, remoteIP)
	f.metrics.ObserveUpstream("recaptcha", resp != nil, time.Since(start).Seconds())
	if resp != nil {
		f.metrics.ObserveRecaptchaScore(resp.Score)
	}
	if err == nil {
		return nil
	}

	// No response means the provider was unreachable, not that the visitor failed
	msgKey := "relay.security_failed"
	if resp == nil {
		msgKey = "relay.server_error"
	} else {
		f.monitor.TrackFailedSecurityCheck(remoteIP, form)
	}
	log.Printf("[%s %s] recaptcha check failed for %s: %v", form, id, remoteIP, err)

	return &ForwardError{
		Kind:    ErrSecurityCheckFailed,
		Status:  http.StatusBadRequest,
		Message: i18n.Translate(lang, msgKey),
		Err:     err,
	}
}

// send makes the single outbound chat call for an accepted form
func (f *LeadForwarder) send(ctx context.Context, lang, text string) error {
	if missing := f.missingTelegramSettings(); len(missing) > 0 {
		return &ForwardError{
			Kind:    ErrServerMisconfigured,
			Status:  http.StatusInternalServerError,
			Message: i18n.Translate(lang, "relay.misconfigured"),
			Err:     fmt.Errorf("missing %v", missing),
		}
	}

	start := time.Now()
	err := f.telegram.SendMessage(ctx, text)
	f.metrics.ObserveUpstream("telegram", err == nil, time.Since(start).Seconds())
	if err == nil {
		return nil
	}

	message := err.Error()
	var apiErr *TelegramAPIError
	if errors.As(err, &apiErr) && apiErr.Body != "" {
		message = apiErr.Body
	}
	return &ForwardError{
		Kind:    ErrRelayFailed,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

func (f *LeadForwarder) missingTelegramSettings() []string {
	var missing []string
	if f.cfg.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if f.cfg.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	return missing
}

// finish logs and counts the outcome, then returns err unchanged
func (f *LeadForwarder) finish(id, form string, err error) error {
	outcome := outcomeFor(err)
	f.metrics.ObserveSubmission(form, outcome)
	if err == nil {
		log.Printf("[%s %s] relayed to telegram", form, id)
		return nil
	}
	log.Printf("[%s %s] %s: %v", form, id, outcome, err)
	return err
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeSent
	case errors.Is(err, ErrMissingSecurityToken):
		return OutcomeMissingToken
	case errors.Is(err, ErrSecurityCheckFailed):
		return OutcomeSecurityFailed
	case errors.Is(err, ErrInvalidFormData):
		return OutcomeInvalid
	case errors.Is(err, ErrServerMisconfigured):
		return OutcomeMisconfigured
	default:
		return OutcomeRelayFailed
	}
}
