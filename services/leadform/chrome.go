package leadform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromeTokenSource obtains reCAPTCHA v3 tokens the way a visitor's browser
// does: it opens the landing page in headless Chrome and calls
// grecaptcha.execute there.
type ChromeTokenSource struct {
	// PageURL is the landing page that loads the reCAPTCHA script
	PageURL string
	// SiteKey overrides the key read from the page's data-recaptcha-site-key attribute
	SiteKey string
	// ExecPath is the Chrome binary; CHROME_PATH is used when empty
	ExecPath string
	// Timeout bounds the whole browser session
	Timeout time.Duration
}

// siteKeyScript reads the key the landing page renders for its own script
const siteKeyScript = `(function(){var el=document.querySelector("[data-recaptcha-site-key]");return el?el.getAttribute("data-recaptcha-site-key"):"";})()`

const readyScript = `typeof window.grecaptcha !== "undefined" && typeof window.grecaptcha.execute === "function"`

func (s *ChromeTokenSource) Token(ctx context.Context, action string) (string, error) {
	if s.PageURL == "" {
		return "", fmt.Errorf("%w: page url not set", ErrTokenUnavailable)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	execPath := s.ExecPath
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if s.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		browserCtx, timeoutCancel = context.WithTimeout(browserCtx, s.Timeout)
		defer timeoutCancel()
	}

	siteKey := s.SiteKey
	var ready bool
	var token string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(s.PageURL),
		chromedp.Poll(readyScript, &ready),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if siteKey != "" {
				return nil
			}
			return chromedp.Evaluate(siteKeyScript, &siteKey).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if siteKey == "" {
				return fmt.Errorf("%w: site key not found on %s", ErrTokenUnavailable, s.PageURL)
			}
			script, err := executeScript(siteKey, action)
			if err != nil {
				return err
			}
			return chromedp.Evaluate(script, &token, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}).Do(ctx)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to execute reCAPTCHA in browser: %w", err)
	}
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// executeScript builds the promise that resolves to a fresh token
func executeScript(siteKey, action string) (string, error) {
	key, err := json.Marshal(siteKey)
	if err != nil {
		return "", err
	}
	act, err := json.Marshal(action)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`new Promise(function(resolve, reject) {
	grecaptcha.ready(function() {
		grecaptcha.execute(%s, {action: %s}).then(resolve, reject);
	});
})`, key, act), nil
}
