package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RecaptchaMinScore is the lowest reCAPTCHA v3 score treated as human
const RecaptchaMinScore = 0.5

// ErrLowRecaptchaScore is returned when the provider accepted the token but
// scored the visitor below RecaptchaMinScore
var ErrLowRecaptchaScore = errors.New("recaptcha score below threshold")

type RecaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// RecaptchaVerifier checks v3 tokens against Google's siteverify endpoint
type RecaptchaVerifier struct {
	secretKey  string
	verifyURL  string
	timeout    time.Duration
	httpClient *http.Client
}

func NewRecaptchaVerifier(secretKey, verifyURL string, timeout time.Duration) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secretKey:  secretKey,
		verifyURL:  verifyURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify posts the token to the provider. The returned response is set
// whenever the provider answered, even if verification failed.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (*RecaptchaResponse, error) {
	if token == "" || v.secretKey == "" {
		return nil, fmt.Errorf("missing token or secret key")
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	form := url.Values{
		"secret":   {v.secretKey},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	var result RecaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode recaptcha response: %w", err)
	}

	if !result.Success {
		return &result, fmt.Errorf("recaptcha verification failed, error codes: %v", result.ErrorCodes)
	}

	if result.Score < RecaptchaMinScore {
		return &result, fmt.Errorf("%w: %.2f", ErrLowRecaptchaScore, result.Score)
	}

	return &result, nil
}
