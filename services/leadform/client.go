package leadform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"studio_landing_go/models"
	"studio_landing_go/services/i18n"
)

// DefaultTimeout bounds one relay request made by the client
const DefaultTimeout = 15 * time.Second

// maxResponseBytes caps how much of a relay response is read
const maxResponseBytes = 1 << 20

// State is a step of a single submission attempt
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateTokenPending
	StateTokenFailed
	StateSending
	StateSent
	StateSendFailed
)

var stateNames = map[State]string{
	StateIdle:         "idle",
	StateValidating:   "validating",
	StateInvalid:      "invalid",
	StateTokenPending: "token_pending",
	StateTokenFailed:  "token_failed",
	StateSending:      "sending",
	StateSent:         "sent",
	StateSendFailed:   "send_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether an attempt ends in s
func (s State) Terminal() bool {
	switch s {
	case StateInvalid, StateTokenFailed, StateSent, StateSendFailed:
		return true
	}
	return false
}

// Outcome is what an attempt reports back to the visitor
type Outcome struct {
	State   State
	Message string
	Fields  FieldErrors
	Err     error
}

// Succeeded reports whether the lead reached the relay
func (o Outcome) Succeeded() bool {
	return o.State == StateSent
}

// Client validates a draft, acquires a bot-check token and posts the lead
// to the relay endpoint. It keeps no state between attempts.
type Client struct {
	endpoint   string
	tokens     TokenSource
	httpClient *http.Client
	lang       string
	observer   func(State)
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLanguage selects the language of messages and of the relay response
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.lang = lang
		}
	}
}

// WithObserver registers fn to be called on every state transition
func WithObserver(fn func(State)) Option {
	return func(c *Client) {
		c.observer = fn
	}
}

// NewClient creates a client posting to endpoint
func NewClient(endpoint string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		lang:       i18n.DefaultLang,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate runs the shared rule set in the client's language
func (c *Client) Validate(draft models.LeadDraft) Result {
	return Validate(c.lang, draft)
}

// AcquireBotToken asks the token source for a token for the submit action.
// A missing source, a provider error and an empty token are all failures.
func (c *Client) AcquireBotToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", ErrTokenUnavailable
	}
	token, err := c.tokens.Token(ctx, models.RecaptchaActionSubmitForm)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// Submit posts a validated lead with its token. It never returns an error
// value directly: failures come back as a StateSendFailed outcome.
func (c *Client) Submit(ctx context.Context, lead models.LeadSubmission, token string) Outcome {
	body, err := json.Marshal(models.NewLeadPayload(lead, token))
	if err != nil {
		return c.sendFailed(err.Error(), nil, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.sendFailed(err.Error(), nil, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", c.lang)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.sendFailed(err.Error(), nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.sendFailed(err.Error(), nil, err)
	}

	var result models.RelayResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		reason := i18n.Translate(c.lang, "lead.request_failed")
		return c.sendFailed(reason, nil, fmt.Errorf("relay returned %d with undecodable body: %w", resp.StatusCode, err))
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && result.Success != "" {
		return Outcome{State: StateSent, Message: i18n.Translate(c.lang, "lead.sent")}
	}

	reason := result.Error
	if reason == "" {
		reason = i18n.Translate(c.lang, "lead.request_failed")
	}
	return c.sendFailed(reason, result.Fields, fmt.Errorf("relay returned %d: %s", resp.StatusCode, reason))
}

func (c *Client) sendFailed(reason string, fields FieldErrors, err error) Outcome {
	return Outcome{
		State:   StateSendFailed,
		Message: i18n.Translate(c.lang, "lead.send_failed", map[string]interface{}{"error": reason}),
		Fields:  fields,
		Err:     err,
	}
}

// Attempt runs one full submission attempt, always starting from idle.
// There is no retry: a failed attempt is re-triggered by the caller.
func (c *Client) Attempt(ctx context.Context, draft models.LeadDraft) Outcome {
	c.transition(StateIdle)
	c.transition(StateValidating)

	res := c.Validate(draft)
	if !res.Valid() {
		return c.finish(Outcome{State: StateInvalid, Fields: res.Errors})
	}

	c.transition(StateTokenPending)
	token, err := c.AcquireBotToken(ctx)
	if err != nil {
		key := "lead.token_failed"
		if errors.Is(err, ErrTokenUnavailable) {
			key = "lead.token_unavailable"
		}
		return c.finish(Outcome{
			State:   StateTokenFailed,
			Message: i18n.Translate(c.lang, key),
			Fields:  FieldErrors{models.FieldRecaptchaToken: i18n.Translate(c.lang, key)},
			Err:     err,
		})
	}

	c.transition(StateSending)
	return c.finish(c.Submit(ctx, *res.Lead, token))
}

func (c *Client) finish(o Outcome) Outcome {
	c.transition(o.State)
	return o
}

func (c *Client) transition(s State) {
	if c.observer != nil {
		c.observer(s)
	}
}
