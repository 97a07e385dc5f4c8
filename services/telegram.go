package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxUpstreamBody caps how much of an error body is kept
const maxUpstreamBody = 4096

// TelegramAPIError is a non-2xx answer from the Bot API
type TelegramAPIError struct {
	StatusCode int
	Body       string
}

func (e *TelegramAPIError) Error() string {
	return fmt.Sprintf("telegram api returned %d: %s", e.StatusCode, e.Body)
}

type telegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// TelegramClient posts plain-text messages to one chat
type TelegramClient struct {
	apiURL     string
	botToken   string
	chatID     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewTelegramClient(apiURL, botToken, chatID string, timeout time.Duration) *TelegramClient {
	return &TelegramClient{
		apiURL:     strings.TrimRight(apiURL, "/"),
		botToken:   botToken,
		chatID:     chatID,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendMessage makes exactly one sendMessage call
func (t *TelegramClient) SendMessage(ctx context.Context, text string) error {
	if t.botToken == "" || t.chatID == "" {
		return fmt.Errorf("telegram bot token or chat id not configured")
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	body, err := json.Marshal(telegramMessage{ChatID: t.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	endpoint := t.apiURL + "/bot" + t.botToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", redactURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", redactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
		return &TelegramAPIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return nil
}

// redactURL drops the request URL, which embeds the bot token, from err
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
